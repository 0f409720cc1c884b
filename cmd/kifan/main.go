package main

import (
	"os"

	"github.com/OpenTraceLab/kifan/cmd/kifan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
