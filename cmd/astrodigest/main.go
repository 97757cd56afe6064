// Command astrodigest builds, validates, and inspects canonical chart
// digests.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/astrodigest/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
