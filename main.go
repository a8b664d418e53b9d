package main

import (
	"os"

	"github.com/arpitpandey99/jobmatcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
