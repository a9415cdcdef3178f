package main

import (
	"os"

	"github.com/shapestone/shape-moxfield/cmd/moxconv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
