package encryption

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// PadLen returns the number of padding bytes added to n bytes of plaintext.
// It is always between 1 and aes.BlockSize: aligned input gains a full block.
func PadLen(n int) int {
	return aes.BlockSize - n%aes.BlockSize
}

// pkcs7Pad returns a copy of data with PKCS#7 padding appended.
func pkcs7Pad(data []byte) []byte {
	padding := PadLen(len(data))

	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)

	return append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad removes PKCS#7 padding from the data.
// It returns an error if the padding is invalid.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, fmt.Errorf("%w: no data", ErrInvalidPadding)
	}

	padding := int(data[length-1])
	if padding == 0 || padding > length || padding > aes.BlockSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPadding, padding)
	}

	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
