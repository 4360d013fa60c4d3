package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readMutationLists reads each argument as a file path, "-" meaning
// stdin, and concatenates the payloads with newlines into one batch.
func readMutationLists(args []string, stdin io.Reader) (string, error) {
	lists := make([]string, 0, len(args))
	for _, arg := range args {
		var (
			payload []byte
			err     error
		)
		if arg == "-" {
			payload, err = io.ReadAll(stdin)
		} else {
			payload, err = os.ReadFile(arg)
		}
		if err != nil {
			return "", fmt.Errorf("reading mutation list %s: %w", arg, err)
		}
		lists = append(lists, string(payload))
	}
	return strings.Join(lists, "\n"), nil
}
