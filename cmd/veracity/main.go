package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/veracity/internal/cli"
)

var (
	// set at build time: -ldflags "-X main.version=... -X main.commit=..."
	version = "dev"
	commit  = "none"
)

func main() {
	cli.SetVersion(version, commit)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
