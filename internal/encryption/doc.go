// Package encryption encrypts firmware images with AES-256 in CBC mode.
//
// Output files are laid out as a 16-byte random IV followed by the ciphertext
// of the PKCS#7 padded input. There is no header and no authentication tag;
// the layout is shared with devices that already decrypt it and must not change.
package encryption
