package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput returns the capture text: the contents of args[0] when a file
// was given, otherwise everything from stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("capture file not found: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", fmt.Errorf("reading capture file %s: %w", path, err)
	}
	return string(data), nil
}
