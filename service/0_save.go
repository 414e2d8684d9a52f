package service

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/pretty"
)

// Save renders a request/response pair as a markdown API example. Nothing is
// written unless API_EXAMPLES_PATH points to a directory.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	uri := request.URL.Path
	if request.URL.RawQuery != "" {
		uri += "?" + request.URL.RawQuery
	}

	s := "# " + title + "\n"
	s += cropTabs(description) + "\n"

	s += "Curl example:\n\n```sh\n"
	s += "curl -X " + request.Method + " \"https://example.com" + uri + "\""
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			s += " \\\n-H \"" + k + ": " + v + "\""
		}
	}
	if requestBody := formatJSON(response.BodyRequestString()); requestBody != "" {
		s += " \\\n-d '" + requestBody + "'"
	}
	s += "\n```\n\n\n"

	s += "HTTP request/response example:\n\n```http\n"
	s += request.Method + " " + uri + " " + request.Proto + "\n"
	s += "Host: example.com\n"
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			s += k + ": " + v + "\n"
		}
	}
	s += "\n" + formatJSON(response.BodyRequestString()) + "\n\n"

	s += response.Proto + " " + response.Status + "\n"
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			s += "Date: Mon, 19 Oct 2026 10:00:00 GMT\n"
			continue
		}
		for _, v := range response.Header[k] {
			s += k + ": " + v + "\n"
		}
	}
	s += "\n" + formatJSON(response.BodyString()) + "\n```\n\n\n"

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	err := os.WriteFile(p, []byte(s), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

// formatJSON indents a JSON body, anything else is returned untouched
func formatJSON(body string) string {
	if !jsontext.Value(body).IsValid() {
		return body
	}
	return strings.TrimSpace(string(pretty.Pretty([]byte(body))))
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cropTabs(d string) string {

	lines := strings.Split(d, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || tabs < minTabs {
			minTabs = tabs
		}
	}
	if minTabs <= 0 {
		return strings.TrimSpace(d) + "\n"
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
