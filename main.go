package main

import (
	"os"

	"github.com/aamirsahmad/media-importer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
