// Command tourline keeps guided-tour line numbers in sync with the code.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/tourline/internal/cmd"
	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/Iron-Ham/tourline/internal/styles"
)

func main() {
	if err := cmd.Execute(); err != nil {
		prefix := "Error:"
		if errors.GetSeverity(err) == errors.SeverityCritical {
			prefix = "Setup error:"
		}
		fmt.Fprintln(os.Stderr, styles.Error.Render(prefix), err)
		os.Exit(1)
	}
}
