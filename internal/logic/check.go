package logic

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/fwenc/internal/filter"
)

// ErrUnmatchedPatterns is returned by RunCheck when a pattern selects nothing.
var ErrUnmatchedPatterns = errors.New("pattern(s) matched no files")

// RunCheck validates that every include/exclude pattern matches at least one file.
func RunCheck(cfg *config.Config) error {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := filter.Walk(cfg.Files)
	if err != nil {
		return err
	}

	failures := checkPatterns("include", includes, candidates, cfg.Quiet) +
		checkPatterns("exclude", excludes, candidates, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d %w", failures, ErrUnmatchedPatterns)
	}

	return nil
}

// checkPatterns tests each pattern individually against candidates.
// Returns the number of patterns that are invalid or matched zero files.
func checkPatterns(kind string, patterns, candidates []string, quiet bool) int {
	var failures int

	failure := color.New(color.FgRed)

	for _, pattern := range patterns {
		matcher, err := filter.NewMatcher([]string{strings.TrimPrefix(pattern, "./")})
		if err != nil {
			failure.Fprintf(os.Stderr, "%s: %s: invalid pattern: %v\n", kind, pattern, err) //nolint:errcheck

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if matcher.MatchAny(path) {
				count++
			}
		}

		switch {
		case count == 0:
			failure.Fprintf(os.Stderr, "%s: %s: 0 files\n", kind, pattern) //nolint:errcheck

			failures++
		case !quiet:
			fmt.Fprintf(os.Stderr, "%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
