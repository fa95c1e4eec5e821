package encryption_test

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fwenc/internal/encryption"
)

func TestPadLen(t *testing.T) {
	t.Parallel()

	for n := range 100 {
		got := encryption.PadLen(n)

		assert.GreaterOrEqual(t, got, 1, "length %d", n)
		assert.LessOrEqual(t, got, aes.BlockSize, "length %d", n)
		assert.Zero(t, (n+got)%aes.BlockSize, "length %d", n)

		if n%aes.BlockSize == 0 {
			assert.Equal(t, aes.BlockSize, got, "aligned length %d gains a full block", n)
		}
	}
}

func TestPkcs7Pad(t *testing.T) {
	t.Parallel()

	input := bytes.Repeat([]byte{0xAA}, 20)

	padded := encryption.Pkcs7Pad(input)

	require.Len(t, padded, 32)
	assert.Equal(t, input, padded[:20])
	assert.Equal(t, bytes.Repeat([]byte{0x0C}, 12), padded[20:])
	assert.Len(t, input, 20, "input must not be modified")

	empty := encryption.Pkcs7Pad(nil)
	assert.Equal(t, bytes.Repeat([]byte{0x10}, 16), empty)
}

func TestPkcs7Unpad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr error
	}{
		{
			name: "partial block",
			data: append([]byte("abcd"), bytes.Repeat([]byte{12}, 12)...),
			want: []byte("abcd"),
		},
		{
			name: "full padding block",
			data: bytes.Repeat([]byte{16}, 16),
			want: []byte{},
		},
		{
			name:    "empty",
			data:    nil,
			wantErr: encryption.ErrInvalidPadding,
		},
		{
			name:    "zero padding byte",
			data:    make([]byte, 16),
			wantErr: encryption.ErrInvalidPadding,
		},
		{
			name:    "padding larger than block",
			data:    bytes.Repeat([]byte{17}, 32),
			wantErr: encryption.ErrInvalidPadding,
		},
		{
			name:    "inconsistent padding",
			data:    append(bytes.Repeat([]byte{1}, 13), 2, 9, 3),
			wantErr: encryption.ErrInvalidPadding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := encryption.Pkcs7Unpad(tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
