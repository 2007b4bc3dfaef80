package main

import (
	"os"

	"github.com/sylan-lang/go-sylan/cmd/sylan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
