package main

import (
	"fmt"
	"os"

	"github.com/wcampbell0x2a/compact-calendar-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
