package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput loads the bytes of a positional input argument. The path "-"
// reads from the command's stdin so digests can be piped between tools.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
