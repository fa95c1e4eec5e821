package encryption_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fwenc/internal/encryption"
)

func newKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, encryption.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return key
}

func newCipher(t *testing.T, key []byte) *encryption.Cipher {
	t.Helper()

	c, err := encryption.NewCipher(key)
	require.NoError(t, err)

	return c
}

// referenceDecrypt decrypts without using the package under test:
// IV is the first block, the last plaintext byte says how much to strip.
func referenceDecrypt(t *testing.T, key, data []byte) []byte {
	t.Helper()

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	plain := make([]byte, len(data)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, data[:aes.BlockSize]).CryptBlocks(plain, data[aes.BlockSize:])

	last := int(plain[len(plain)-1])

	return plain[:len(plain)-last]
}

func TestNewCipherKeySize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 16, 24, 31, 33, 64} {
		_, err := encryption.NewCipher(make([]byte, size))
		require.ErrorIs(t, err, encryption.ErrInvalidKey, "size %d", size)
	}

	_, err := encryption.NewCipher(make([]byte, encryption.KeySize))
	require.NoError(t, err)
}

func TestEncryptLayout(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	c := newCipher(t, key)

	for _, n := range []int{0, 1, 15, 16, 17, 20, 31, 32, 33, 1000} {
		plaintext := bytes.Repeat([]byte{0x5A}, n)

		out, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		padded := n + encryption.PadLen(n)

		assert.Len(t, out, aes.BlockSize+padded, "length %d", n)
		assert.Equal(t, encryption.EncryptedSize(n), len(out), "length %d", n)
		assert.Zero(t, (len(out)-aes.BlockSize)%aes.BlockSize, "length %d", n)
		assert.Equal(t, plaintext, referenceDecrypt(t, key, out), "length %d", n)
	}
}

func TestEncryptTwentyBytes(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	c := newCipher(t, key)

	input := bytes.Repeat([]byte{0xAA}, 20)

	out, err := c.Encrypt(input)
	require.NoError(t, err)
	require.Len(t, out, 48)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	plain := make([]byte, 32)
	cipher.NewCBCDecrypter(block, out[:16]).CryptBlocks(plain, out[16:])

	assert.Equal(t, input, plain[:20])
	assert.Equal(t, bytes.Repeat([]byte{0x0C}, 12), plain[20:])
}

func TestEncryptEmpty(t *testing.T) {
	t.Parallel()

	key := newKey(t)

	out, err := newCipher(t, key).Encrypt(nil)
	require.NoError(t, err)

	assert.Len(t, out, 32)
	assert.Empty(t, referenceDecrypt(t, key, out))
}

func TestEncryptKnownAnswer(t *testing.T) {
	t.Parallel()

	// NIST SP 800-38A F.2.5, first block.
	key, _ := hex.DecodeString("603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4")
	iv, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	plaintext, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")
	want, _ := hex.DecodeString("f58c4c04d6e5f1ba779eabfb5f7bfbd6")

	c := newCipher(t, key)
	encryption.SetRandom(c, bytes.NewReader(iv))

	out, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	require.Len(t, out, 48)

	assert.Equal(t, iv, out[:16])
	assert.Equal(t, want, out[16:32])

	got, err := c.Decrypt(out)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptFreshIV(t *testing.T) {
	t.Parallel()

	c := newCipher(t, newKey(t))
	input := []byte("same firmware, same key")

	first, err := c.Encrypt(input)
	require.NoError(t, err)

	second, err := c.Encrypt(input)
	require.NoError(t, err)

	assert.NotEqual(t, first[:aes.BlockSize], second[:aes.BlockSize])
	assert.NotEqual(t, first, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestEncryptRandomFailure(t *testing.T) {
	t.Parallel()

	c := newCipher(t, newKey(t))
	encryption.SetRandom(c, failingReader{})

	_, err := c.Encrypt([]byte("data"))
	require.ErrorContains(t, err, "generating IV")
}

func TestDecrypt(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	c := newCipher(t, key)

	input := []byte("firmware image v1.2.3")

	out, err := c.Encrypt(input)
	require.NoError(t, err)

	got, err := c.Decrypt(out)
	require.NoError(t, err)
	assert.Equal(t, input, got)

	t.Run("short", func(t *testing.T) {
		t.Parallel()

		_, err := c.Decrypt(out[:aes.BlockSize])
		require.ErrorIs(t, err, encryption.ErrShortData)
	})

	t.Run("misaligned", func(t *testing.T) {
		t.Parallel()

		_, err := c.Decrypt(out[:len(out)-1])
		require.ErrorIs(t, err, encryption.ErrInvalidBlockSize)
	})

	t.Run("tampered padding", func(t *testing.T) {
		t.Parallel()

		// Flipping the second-to-last ciphertext block flips the final plaintext block,
		// including its padding byte, in a predictable way.
		tampered := bytes.Clone(out)
		tampered[len(tampered)-aes.BlockSize-1] ^= 0xFF

		_, err := c.Decrypt(tampered)
		require.ErrorIs(t, err, encryption.ErrInvalidPadding)
	})
}
