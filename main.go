// Command raven is the CLI entrypoint for the Raven language toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/martian56/raven/cmd/raven/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
