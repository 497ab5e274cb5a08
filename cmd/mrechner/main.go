package main

import (
	"os"

	"github.com/msto63/mRechner/cmd/mrechner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
