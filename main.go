// Command fwenc encrypts firmware images with AES-256-CBC.
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"

	"github.com/idelchi/fwenc/internal/commands"
	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// version is set by the build system.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			return
		}

		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err) //nolint:errcheck

		os.Exit(1)
	}
}
