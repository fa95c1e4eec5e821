package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/fwenc/internal/logic"
)

// NewBatchCommand creates a new cobra command for the batch subcommand.
func NewBatchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] [paths...]",
		Short: "Encrypt or decrypt many files in parallel",
		Long: `Encrypt or decrypt every selected file, writing <file><encrypt-ext> when
encrypting and stripping the suffix again when decrypting.

Directories are walked and filtered with --include/--exclude. Without
includes, encryption skips files that already carry the encrypted suffix and
decryption only picks them.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunBatch(cfg)
		},
	}

	cmd.Flags().BoolP("decrypt", "D", false, "Decrypt instead of encrypt")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	cmd.Flags().Bool("delete", false, "Delete the original file after successful encryption/decryption")
	cmd.Flags().Bool("dry", false, "Show what would be processed without doing it")
	cmd.Flags().Bool("stats", false, "Print statistics when done")
	cmd.Flags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	cmd.Flags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	addFilterFlags(cmd)

	return cmd
}
