// Package filter selects the files of a batch run.
//
// Explicit file arguments are always taken. Directory arguments are walked and
// every file below them is matched against include/exclude patterns with
// find -path semantics, where excludes always win.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFiles is returned when nothing is left to process after filtering.
var ErrNoFiles = errors.New("no files matched the provided patterns")

// Options configures Resolve.
type Options struct {
	Includes []string
	Excludes []string

	// HasIncludes is set when include filtering was requested, even if the list ended up empty.
	HasIncludes bool
}

// Selection is the outcome of Resolve.
type Selection struct {
	// Files to process, in walk order and without duplicates.
	Files []string
	// Scanned counts every file considered, before filtering.
	Scanned int
}

// Excluded returns how many scanned files were filtered out.
func (s Selection) Excluded() int {
	return s.Scanned - len(s.Files)
}

// Filter selects paths based on include/exclude patterns.
type Filter struct {
	includes    *Matcher
	excludes    *Matcher
	hasIncludes bool
}

// New compiles the patterns of opts into a Filter.
func New(opts Options) (*Filter, error) {
	inc, err := NewMatcher(normalize(opts.Includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := NewMatcher(normalize(opts.Excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc, hasIncludes: opts.HasIncludes}, nil
}

// Keep reports whether the slash-separated path passes the filter.
func (f *Filter) Keep(path string) bool {
	included := !f.hasIncludes || f.includes.MatchAny(path)

	return included && !f.excludes.MatchAny(path)
}

// Resolve expands args into the files to process.
func Resolve(args []string, opts Options) (Selection, error) {
	var selection Selection

	for _, arg := range args {
		if err := validatePath(arg); err != nil {
			return selection, err
		}
	}

	flt, err := New(opts)
	if err != nil {
		return selection, err
	}

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		selection.Files = append(selection.Files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return selection, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			selection.Scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			selection.Scanned++

			if flt.Keep(filepath.ToSlash(filepath.Clean(path))) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return selection, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(selection.Files) == 0 {
		return selection, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return selection, nil
}

// Walk lists every file below the given paths, slash-separated, without filtering.
func Walk(args []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	for _, arg := range args {
		err := filepath.WalkDir(filepath.Clean(arg), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			clean := filepath.ToSlash(filepath.Clean(path))
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	return paths, nil
}

// normalize strips leading "./" from patterns so they match cleaned paths.
func normalize(patterns []string) []string {
	out := make([]string, len(patterns))

	for i, p := range patterns {
		out[i] = strings.TrimPrefix(p, "./")
	}

	return out
}

// validatePath rejects paths that escape the current working directory.
func validatePath(path string) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute paths are not allowed: %q", path)
	}

	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("paths must be within the current working directory: %q", path)
	}

	return nil
}
