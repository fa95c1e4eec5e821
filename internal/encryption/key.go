package encryption

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/gogen/pkg/key"
)

// KeySize is the only accepted key length, selecting AES-256.
const KeySize = 32

// ParseKey decodes a hex encoded key, ignoring surrounding whitespace.
func ParseKey(encoded string) ([]byte, error) {
	decoded, err := key.FromHex(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if len(decoded) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(decoded))
	}

	return decoded, nil
}

// NewKey returns a random key of KeySize bytes, hex encoded.
func NewKey() (string, error) {
	generated, err := key.New(KeySize)
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	return generated.AsHex(), nil
}

// ResolveKey loads the key from whichever source the configuration names.
func ResolveKey(source config.Key) ([]byte, error) {
	switch {
	case source.String != "":
		return ParseKey(source.String)
	case source.File != "":
		data, err := os.ReadFile(filepath.Clean(source.File))
		if err != nil {
			return nil, fmt.Errorf("%w: reading key file: %w", ErrIO, err)
		}

		return ParseKey(string(data))
	default:
		return nil, fmt.Errorf("%w: no key provided", ErrInvalidKey)
	}
}
