// Package main is the entry point for the cinder desktop shell.
package main

import (
	"embed"
	"io/fs"
	"log"
	"os"

	"github.com/cinder-app/cinder/internal/cli"
)

//go:embed all:assets
var embedded embed.FS

func main() {
	log.SetPrefix("[cinder] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	assets, err := fs.Sub(embedded, "assets")
	if err != nil {
		log.Fatalf("Bundled assets missing: %v", err)
	}

	if err := cli.Execute(assets); err != nil {
		os.Exit(1)
	}
}
