package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

const headerOffset = 1024

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create store", func(a *biff.A) {
		resp := apiRequest("POST", "/stores").
			WithBodyJson(JSON{
				"name": "my-store",
			}).Do()
		Save(resp, "Create store", `
			Creates an empty store. The file is created with the header region
			reserved, so its initial size is the header offset.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		emptyStore := JSON{
			"name":          "my-store",
			"header_offset": headerOffset,
			"size":          headerOffset,
			"serializer":    "json",
			"framing":       "none",
			"documents":     0,
			"bytes":         0,
		}
		biff.AssertEqualJson(resp.BodyJson(), emptyStore)

		a.Alternative("Retrieve store", func(a *biff.A) {
			resp := apiRequest("GET", "/stores/my-store").Do()
			Save(resp, "Retrieve store", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), emptyStore)
		})

		a.Alternative("List stores", func(a *biff.A) {
			resp := apiRequest("GET", "/stores").Do()
			Save(resp, "List stores", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{emptyStore})
		})

		a.Alternative("Create store again", func(a *biff.A) {
			resp := apiRequest("POST", "/stores").
				WithBodyJson(JSON{
					"name": "my-store",
				}).Do()
			Save(resp, "Create store - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Append one document", func(a *biff.A) {
			myDocument := `{"name":"Fulanez","address":"Elm Street 11"}`
			resp := apiRequest("POST", "/stores/my-store:append").
				WithBodyString(myDocument).Do()
			Save(resp, "Append one", `
				Documents are appended exactly as serialized, without any
				separator between them.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"documents": 1,
				"bytes":     len(myDocument),
			})

			a.Alternative("Retrieve store after append", func(a *biff.A) {
				resp := apiRequest("GET", "/stores/my-store").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				body := resp.BodyJsonMap()
				biff.AssertEqualJson(body["documents"], 1)
				biff.AssertEqualJson(body["size"], headerOffset+len(myDocument))
			})

			a.Alternative("Reload store", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:reload").Do()
				Save(resp, "Reload store", `
					Reopens the store file, useful after the file was rotated
					by another process.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJsonMap()["size"], headerOffset+len(myDocument))
			})

			a.Alternative("Sync store", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:sync").Do()
				Save(resp, "Sync store", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
			})
		})

		a.Alternative("Append many documents", func(a *biff.A) {
			body := `{"id":"1","name":"Alfonso"}
				{"id":"2","name":"Gerardo"}
				{"id":"3","name":"Alfonso"}`
			resp := apiRequest("POST", "/stores/my-store:append").
				WithBodyString(body).Do()
			Save(resp, "Append many", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"documents": 3,
				"bytes":     3 * len(`{"id":"1","name":"Alfonso"}`),
			})
		})

		a.Alternative("Append nothing", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:append").
				WithBodyString("").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
		})

		a.Alternative("Append malformed document", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:append").
				WithBodyString(`{"valid":true} {"broken":`).Do()
			Save(resp, "Append - malformed", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			// Documents before the broken one are kept
			resp = apiRequest("GET", "/stores/my-store").Do()
			biff.AssertEqualJson(resp.BodyJsonMap()["documents"], 1)
		})

		a.Alternative("Drop store", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:dropStore").Do()
			Save(resp, "Drop store", `
				Removes the store file. The response holds the last state of the
				store.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), emptyStore)

			a.Alternative("Get dropped store", func(a *biff.A) {
				resp := apiRequest("GET", "/stores/my-store").Do()
				Save(resp, "Get store - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})
	})

	a.Alternative("Append to a new store", func(a *biff.A) {
		resp := apiRequest("POST", "/stores/new-store:append").
			WithBodyString(`["a","b"]`).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)

		resp = apiRequest("GET", "/stores/new-store").Do()
		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJsonMap()["documents"], 1)
	})

	a.Alternative("Create store without name", func(a *biff.A) {
		resp := apiRequest("POST", "/stores").
			WithBodyJson(JSON{}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		name, _ := resp.BodyJsonMap()["name"].(string)
		biff.AssertEqual(len(name), 36)
	})

	a.Alternative("Create store with invalid name", func(a *biff.A) {
		resp := apiRequest("POST", "/stores").
			WithBodyJson(JSON{
				"name": ".hidden",
			}).Do()
		Save(resp, "Create store - invalid name", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Drop unknown store", func(a *biff.A) {
		resp := apiRequest("POST", "/stores/nobody:dropStore").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Retrieve unknown store", func(a *biff.A) {
		resp := apiRequest("GET", "/stores/nobody").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "store not found: 'nobody'",
				"description": "store does not exist",
			},
		})
	})
}
