package main

import (
	"os"

	"github.com/hanseo-dev/jasoseo-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
