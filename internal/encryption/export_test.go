package encryption

import "io"

// SetRandom replaces the IV source of c.
func SetRandom(c *Cipher, r io.Reader) {
	c.random = r
}

var (
	Pkcs7Pad   = pkcs7Pad
	Pkcs7Unpad = pkcs7Unpad
)
