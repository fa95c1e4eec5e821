// Package fileutil provides atomic file output.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// TempContext holds state for an atomic file write operation.
// Data is written to TmpFile, which lives next to the final output, and only
// renamed over the output once Commit succeeds.
type TempContext struct {
	SrcInfo os.FileInfo
	IsExec  bool
	TmpFile *os.File
	TmpName string

	outPath string
}

// NewTempContext stats the source file and creates a temp file for atomic writing.
// Caller must defer CleanupOnError.
func NewTempContext(filename, outPath string) (*TempContext, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", filename)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".fwenc-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		SrcInfo: info,
		IsExec:  info.Mode()&executableBits != 0,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
		outPath: outPath,
	}, nil
}

// Commit finishes the temp file and renames it over the output, returning the output size.
// Owner read/write is always granted; execute bits follow the source file.
// The rename is the last step, so a failed Commit never touches the output.
func (tc *TempContext) Commit(preserveTimestamps bool) (int64, error) {
	perm := os.FileMode(ownerReadWrite)

	if tc.IsExec {
		perm |= executableBits
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Sync(); err != nil {
		return 0, fmt.Errorf("syncing temporary file: %w", err)
	}

	info, err := tc.TmpFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat temporary file: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if preserveTimestamps {
		modTime := tc.SrcInfo.ModTime()
		if err := os.Chtimes(tc.TmpName, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	if err := os.Rename(tc.TmpName, tc.outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	return info.Size(), nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup, may already be closed

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}
