package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/fwenc/internal/logic"
)

// errNoKey is returned when only the two paths are given without a key flag.
var errNoKey = errors.New("requires <key-hex>, --key or --key-file")

// fileArgs accepts <input> <output> [key-hex]. The key argument may only be left out
// when a key flag is given; FWENC_KEY alone does not count.
func fileArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(2, 3)(cmd, args); err != nil { //nolint:mnd
		return err
	}

	if len(args) == 2 && !keyFlagged(cmd) { //nolint:mnd
		return errNoKey
	}

	return nil
}

func keyFlagged(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("key") || cmd.Flags().Changed("key-file")
}

// filePreRun loads cfg for a single-file command.
func filePreRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg.Input, cfg.Output = args[0], args[1]
		cfg.Files = nil

		viper.Set("decrypt", decrypt)

		if len(args) == 3 { //nolint:mnd
			if keyFlagged(cmd) {
				return errors.New("key given both as argument and flag")
			}

			// The positional key takes precedence over the environment.
			viper.Set("key", args[2])
			viper.Set("key-file", "")
		}

		// A single key flag takes precedence over the other source in the environment.
		switch flags := cmd.Flags(); {
		case flags.Changed("key") && !flags.Changed("key-file"):
			viper.Set("key-file", "")
		case flags.Changed("key-file") && !flags.Changed("key"):
			viper.Set("key", "")
		}

		return validate(cfg)
	}
}

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] <input-file> <output-file> [key-hex]",
		Aliases: []string{"enc"},
		Short:   "Encrypt a firmware image",
		Long: `Encrypt a firmware image with AES-256-CBC.

The output is a random 16-byte IV followed by the PKCS#7 padded ciphertext.
The key is 64 hex characters, given as the third argument, --key or --key-file.`,
		Example: "  fwenc encrypt firmware.bin firmware.enc $(cat key.hex)",
		Args:    fileArgs,
		PreRunE: filePreRun(cfg, false),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunFile(cfg)
		},
	}
}

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] <input-file> <output-file> [key-hex]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a firmware image",
		Long: `Decrypt a file produced by encrypt.

The data is not authenticated: a wrong key or a corrupted file is usually
reported as invalid padding, but may also decrypt to garbage.`,
		Args:    fileArgs,
		PreRunE: filePreRun(cfg, true),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunFile(cfg)
		},
	}
}
