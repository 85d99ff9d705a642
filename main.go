package main

import (
	"os"

	"github.com/khalari/khalari/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
