// Command tailwind manages and runs the standalone tailwindcss binary:
// it resolves the release target for the host platform, downloads and
// installs the pinned version, and executes it with profile arguments
// from tailwind.lua.
package main

import (
	"fmt"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
