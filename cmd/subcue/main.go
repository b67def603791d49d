package main

import (
	"os"

	"github.com/kaverma/subcue/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
