package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher encrypts and decrypts whole buffers with AES-256-CBC.
// It is safe for concurrent use.
type Cipher struct {
	block cipher.Block

	// random is the IV source, crypto/rand outside of tests.
	random io.Reader
}

// NewCipher creates a Cipher for a KeySize byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &Cipher{block: block, random: rand.Reader}, nil
}

// Encrypt pads plaintext and returns a fresh random IV followed by the ciphertext.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	padded := pkcs7Pad(plaintext)

	out := make([]byte, aes.BlockSize+len(padded))

	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return out, nil
}

// Decrypt splits data into IV and ciphertext, decrypts it and strips the padding.
// A wrong key is usually reported as ErrInvalidPadding, but nothing authenticates
// the data and garbage can unpad cleanly.
func (c *Cipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) < 2*aes.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortData, len(data))
	}

	iv := data[:aes.BlockSize]
	ciphertext := data[aes.BlockSize:]

	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return unpadded, nil
}

// EncryptedSize returns the size of the encrypted form of n plaintext bytes.
func EncryptedSize(n int) int {
	return aes.BlockSize + n + PadLen(n)
}
