// Command editor runs the Phantom scene editor.
package main

import (
	"os"

	"github.com/younwookim/phantom/internal/logging"
)

// main is the entry point for the editor binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := Execute(os.Args[1:], logger); err != nil {
		logger.Error("editor failed", "error", err)
		os.Exit(1)
	}
}
