// Package commands provides the command-line interface for the fwenc tool.
//
// It implements commands for:
//   - single-file encryption and decryption
//   - batch processing of directories
//   - checking include/exclude patterns
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// defaults runs once cobraext has bound flags and FWENC_* variables to viper.
// Arguments are valid by now, so later errors are reported without usage.
func defaults(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	for key, value := range config.Defaults() {
		viper.SetDefault(key, value)
	}

	return nil
}

// validate loads cfg from viper and validates it.
// With --show the configuration is printed and cobraext.ErrExitGracefully returned.
func validate(cfg *config.Config) error {
	if err := cobraext.Validate(cfg, cfg); err != nil {
		return err //nolint:wrapcheck
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	return nil
}

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Input, cfg.Output = "", ""

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return validate(cfg)
	}
}

// addFilterFlags registers the include/exclude flags shared by batch and check.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("include", "i", nil, "Only process files matching these find -path patterns")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Skip files matching these find -path patterns")
	cmd.Flags().String("include-from", "", "JSONC file with an array of include patterns")
	cmd.Flags().String("exclude-from", "", "JSONC file with an array of exclude patterns")
}
