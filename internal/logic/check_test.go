package logic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idelchi/fwenc/internal/logic"
)

func TestRunCheck(t *testing.T) {
	chdirTree(t, map[string][]byte{
		"fw/app.bin":  nil,
		"fw/boot.bin": nil,
		"README.md":   nil,
	})

	cfg := baseConfig()
	cfg.Files = []string{"."}
	cfg.Include = []string{"./fw/*.bin"}
	cfg.Exclude = []string{"*.md"}

	require.NoError(t, logic.RunCheck(cfg))

	cfg.Include = []string{"*.bin", "*.hex", "[oops"}

	err := logic.RunCheck(cfg)
	require.ErrorIs(t, err, logic.ErrUnmatchedPatterns)
	require.ErrorContains(t, err, "2 pattern(s)")

	cfg.Include, cfg.Exclude = nil, nil

	require.ErrorContains(t, logic.RunCheck(cfg), "no include or exclude patterns")
}
