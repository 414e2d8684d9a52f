package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/tidwall/pretty"

	"github.com/fulldump/docdb/bootstrap"
	"github.com/fulldump/docdb/configuration"
)

var banner = `
     _            _ _     
  __| | ___   ___| | |__  
 / _' |/ _ \ / __| | '_ \ 
| (_| | (_) | (__| | |_) |
 \__,_|\___/ \___|_|_.__/ 
          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		b, _ := json.Marshal(c)
		os.Stdout.Write(pretty.Pretty(b))
	}

	start, _ := bootstrap.Bootstrap(c)
	err := start()
	if err != nil {
		os.Exit(1)
	}
}
