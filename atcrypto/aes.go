package atcrypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/atsign-foundation/atclientgo/aterror"
)

// ZeroIV is the all-zero 16-byte counter block every ceremony in this
// protocol uses: self-encryption-key unwrap and envelope encrypt/decrypt
// both construct their AES-256-CTR stream cipher with this IV.
var ZeroIV = [16]byte{}

// NewCTRCipher constructs an AES-256-CTR stream cipher from a 32-byte
// key and a 16-byte IV (big-endian counter block). CTR mode is
// symmetric: the same stream cipher construction encrypts or decrypts.
func NewCTRCipher(key Raw, iv [16]byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: construct aes cipher")
	}
	return cipher.NewCTR(block, iv[:]), nil
}

// XORKeyStream runs a stream cipher over data, returning a fresh slice;
// CTR mode makes this the same operation for encrypt and decrypt.
func XORKeyStream(c cipher.Stream, data Raw) Raw {
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out
}

// CreateNewAESKey generates a fresh 32-byte AES-256 key.
func CreateNewAESKey() (Raw, error) {
	key, err := randomBytes(32)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: generate aes key")
	}
	return key, nil
}
