package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// Flags shared by all subcommands are persistent; their values can also
// be set through FWENC_* environment variables.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, defaults)

	root.Use = "fwenc [flags] command [flags]"
	root.Short = "Firmware image encryption utility"
	root.Long = `Encrypts firmware images with AES-256-CBC for devices holding the same key.

Encrypted files are a 16-byte random IV followed by the ciphertext. There is
no header and no integrity protection; the device must be told out-of-band
which key was used.`

	// Argument errors are reported before defaults runs, and are the only ones shown with usage.
	root.SilenceUsage = false

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().StringP("key", "k", "", "Encryption key (32 bytes, hex-encoded)")
	root.PersistentFlags().
		StringP("key-file", "f", "", "Path to the key file with the encryption key (32 bytes, hex-encoded)")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().String("log-level", "warn", "Diagnostic log level (trace, debug, info, warn, error, disabled)")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewBatchCommand(cfg),
		NewCheckCommand(cfg),
		NewGenerateCommand(),
	)

	return root
}
