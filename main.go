package main

import (
	"os"

	"github.com/protodart/protodart/app"
	"github.com/protodart/protodart/cui"
)

func main() {
	os.Exit(app.New(cui.New()).Run(os.Args[1:]))
}
