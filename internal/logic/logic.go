// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/fwenc/internal/encryption"
	"github.com/idelchi/fwenc/internal/filter"
	"github.com/idelchi/fwenc/internal/logging"
)

// RunFile encrypts or decrypts cfg.Input into cfg.Output.
func RunFile(cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	if _, err := proc.ProcessFile(cfg.Input, cfg.Output); err != nil {
		return err
	}

	if !cfg.Quiet {
		verb := "encrypted"
		if cfg.Decrypt {
			verb = "decrypted"
		}

		fmt.Printf("File %s successfully: %s\n", verb, cfg.Output) //nolint:forbidigo
	}

	return nil
}

// RunBatch resolves cfg.Files and processes every selected file.
func RunBatch(cfg *config.Config) error {
	start := time.Now()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	var proc *encryption.Processor

	if !cfg.Dry {
		proc, err = encryption.NewProcessor(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating processor: %w", err)
		}
	}

	selection, err := resolveFiles(cfg, logger)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	if cfg.Dry {
		dryRun(cfg, selection, start)

		return nil
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(selection, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running batch: %w", err)
	}

	return nil
}

// resolveFiles applies include/exclude filtering to cfg.Files and replaces them with the result.
// Without explicit includes, decryption selects files carrying the encrypted suffix
// and encryption skips them.
func resolveFiles(cfg *config.Config, logger zerolog.Logger) (filter.Selection, error) {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return filter.Selection{}, err
	}

	hasIncludes := len(cfg.Include) > 0 || cfg.IncludeFrom != ""

	if !hasIncludes {
		if cfg.Decrypt {
			includes = append(includes, "*"+cfg.Suffixes.Encrypt)
			hasIncludes = true
		} else {
			excludes = append(excludes, "*"+cfg.Suffixes.Encrypt)
		}
	}

	logger.Debug().
		Strs("includes", includes).
		Strs("excludes", excludes).
		Strs("paths", cfg.Files).
		Msg("resolving files")

	selection, err := filter.Resolve(cfg.Files, filter.Options{
		Includes:    includes,
		Excludes:    excludes,
		HasIncludes: hasIncludes,
	})
	if err != nil {
		return selection, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = selection.Files

	return selection, nil
}

// loadPatterns merges CLI and file-based include/exclude patterns.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// dryRun previews what would be processed without touching any file.
func dryRun(cfg *config.Config, selection filter.Selection, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Would process %q -> %q\n", file, encryption.OutputPath(file, cfg)) //nolint:forbidigo
		}

		if info, err := os.Stat(file); err == nil {
			size := int(info.Size())
			if !cfg.Decrypt {
				size = encryption.EncryptedSize(size)
			}

			totalSize += int64(size)
		}
	}

	if cfg.Stats {
		printStats(selection, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(selection filter.Selection, processed, errored int, totalSize int64, duration time.Duration) {
	heading := color.New(color.Bold)

	heading.Fprintf(os.Stderr, "\nStats\n") //nolint:errcheck
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", selection.Scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", selection.Excluded())
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
