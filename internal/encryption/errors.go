package encryption

import "errors"

var (
	// ErrInvalidKey is returned when a key is not valid hex or not exactly KeySize bytes.
	ErrInvalidKey = errors.New("key must be 32 bytes (64 hex characters)")
	// ErrIO is returned when an input cannot be read or an output cannot be written.
	ErrIO = errors.New("i/o error")
	// ErrOutputIsInput is returned in batch mode when a file would be written over itself.
	ErrOutputIsInput = errors.New("output path is the input path")
	// ErrShortData is returned when encrypted data is too short to hold an IV and one block.
	ErrShortData = errors.New("encrypted data too short")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)
