// Package atchops composes the atcrypto primitives into the named
// cryptographic ceremonies this protocol performs: unwrapping a
// self-encrypted private key, signing a pkam challenge, minting and
// wrapping shared symmetric keys, and encrypting/decrypting envelope
// values. Each ceremony is grounded in exactly one fixed sequence of
// atcrypto calls; nothing here chooses an encoding or a cipher mode,
// it only sequences what atcrypto already defines.
package atchops

import (
	"crypto/rsa"
	"unicode/utf8"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atcrypto"
)

// UnwrapSelfEncryptedPrivateKey reverses the self-encryption ceremony
// the atServer uses to store a client's own private keys: AES-256-CTR
// decrypt with the zero IV under the self encryption key, strip the
// PKCS#7-style trailing pad byte, and interpret the remainder as
// UTF-8. The result is itself base64 text -- the PKCS#8 DER of the key,
// re-encoded -- and is returned as such for the caller to decode and
// parse.
func UnwrapSelfEncryptedPrivateKey(encryptedKey atcrypto.B64, selfEncryptionKey atcrypto.B64) (atcrypto.B64, error) {
	key, err := atcrypto.DecodeB64(selfEncryptionKey)
	if err != nil {
		return "", aterror.WithCause(aterror.InvalidKey, err, "atchops: decode self encryption key")
	}
	ciphertext, err := atcrypto.DecodeB64(encryptedKey)
	if err != nil {
		return "", aterror.WithCause(aterror.InvalidKey, err, "atchops: decode encrypted private key")
	}

	cipher, err := atcrypto.NewCTRCipher(key, atcrypto.ZeroIV)
	if err != nil {
		return "", err
	}
	plain := atcrypto.XORKeyStream(cipher, ciphertext)
	if len(plain) == 0 {
		return "", aterror.New(aterror.InvalidKey, "atchops: unwrapped private key is empty")
	}

	pad := int(plain[len(plain)-1])
	if pad <= 0 || pad > len(plain) {
		return "", aterror.New(aterror.InvalidKey, "atchops: invalid padding on unwrapped private key")
	}
	plain = plain[:len(plain)-pad]

	if !isValidUTF8(plain) {
		return "", aterror.New(aterror.InvalidKey, "atchops: unwrapped private key is not valid UTF-8")
	}
	return atcrypto.B64(plain), nil
}

// SignChallenge parses a base64-wrapped PKCS#8 private key and signs
// the challenge text with it, self-verifying before returning. The
// private key is the UTF-8/base64 text UnwrapSelfEncryptedPrivateKey
// produces, not yet DER-decoded.
func SignChallenge(challenge string, privateKey atcrypto.B64) (atcrypto.B64, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	sig, err := atcrypto.RSASign(atcrypto.Raw(challenge), key)
	if err != nil {
		return "", err
	}
	return atcrypto.EncodeB64(sig), nil
}

// CreateNewSharedSymmetricKey mints a fresh AES-256 key for sharing
// records with a new peer, returned as its 44-character base64 form.
func CreateNewSharedSymmetricKey() (atcrypto.B64, error) {
	key, err := atcrypto.CreateNewAESKey()
	if err != nil {
		return "", err
	}
	return atcrypto.EncodeB64(key), nil
}

// WrapSymmetricKey encrypts a base64-encoded symmetric key with a
// peer's RSA public key, so the encrypted blob can be handed to the
// peer via an `update` of their shared_key record.
func WrapSymmetricKey(symmetricKey atcrypto.B64, peerPublicKey atcrypto.B64) (atcrypto.B64, error) {
	pub, err := parsePublicKey(peerPublicKey)
	if err != nil {
		return "", err
	}
	wrapped, err := atcrypto.RSAEncrypt(atcrypto.Raw(symmetricKey), pub)
	if err != nil {
		return "", err
	}
	return atcrypto.EncodeB64(wrapped), nil
}

// UnwrapSymmetricKey decrypts a peer-wrapped symmetric key with our
// own private key, recovering the base64 form of the shared key.
func UnwrapSymmetricKey(wrappedKey atcrypto.B64, ourPrivateKey atcrypto.B64) (atcrypto.B64, error) {
	priv, err := parsePrivateKey(ourPrivateKey)
	if err != nil {
		return "", err
	}
	ciphertext, err := atcrypto.DecodeB64(wrappedKey)
	if err != nil {
		return "", aterror.WithCause(aterror.InvalidKey, err, "atchops: decode wrapped symmetric key")
	}
	plain, err := atcrypto.RSADecrypt(ciphertext, priv)
	if err != nil {
		return "", err
	}
	return atcrypto.B64(plain), nil
}

// EncryptEnvelope encrypts a value's UTF-8 bytes with a base64
// symmetric key under AES-256-CTR with the zero IV, returning the
// base64 ciphertext put on the wire by `update`.
func EncryptEnvelope(value string, symmetricKey atcrypto.B64) (atcrypto.B64, error) {
	key, err := atcrypto.DecodeB64(symmetricKey)
	if err != nil {
		return "", aterror.WithCause(aterror.InvalidKey, err, "atchops: decode symmetric key")
	}
	cipher, err := atcrypto.NewCTRCipher(key, atcrypto.ZeroIV)
	if err != nil {
		return "", err
	}
	ciphertext := atcrypto.XORKeyStream(cipher, atcrypto.Raw(value))
	return atcrypto.EncodeB64(ciphertext), nil
}

// EncryptEnvelopeBinary is EncryptEnvelope for already-binary data, used
// when the record value is not textual.
func EncryptEnvelopeBinary(value atcrypto.Raw, symmetricKey atcrypto.B64) (atcrypto.B64, error) {
	key, err := atcrypto.DecodeB64(symmetricKey)
	if err != nil {
		return "", aterror.WithCause(aterror.InvalidKey, err, "atchops: decode symmetric key")
	}
	cipher, err := atcrypto.NewCTRCipher(key, atcrypto.ZeroIV)
	if err != nil {
		return "", err
	}
	ciphertext := atcrypto.XORKeyStream(cipher, value)
	return atcrypto.EncodeB64(ciphertext), nil
}

// DecryptEnvelope decrypts a base64 ciphertext returned by lookup/scan
// and interprets the result as UTF-8 text.
func DecryptEnvelope(ciphertext atcrypto.B64, symmetricKey atcrypto.B64) (string, error) {
	plain, err := decryptEnvelopeBytes(ciphertext, symmetricKey)
	if err != nil {
		return "", err
	}
	if !isValidUTF8(plain) {
		return "", aterror.New(aterror.ProtocolError, "atchops: decrypted envelope is not valid UTF-8")
	}
	return string(plain), nil
}

// DecryptEnvelopeBinary decrypts a base64 ciphertext without requiring
// the result to be valid UTF-8, for binary record values.
func DecryptEnvelopeBinary(ciphertext atcrypto.B64, symmetricKey atcrypto.B64) (atcrypto.Raw, error) {
	return decryptEnvelopeBytes(ciphertext, symmetricKey)
}

func decryptEnvelopeBytes(ciphertext atcrypto.B64, symmetricKey atcrypto.B64) (atcrypto.Raw, error) {
	key, err := atcrypto.DecodeB64(symmetricKey)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atchops: decode symmetric key")
	}
	data, err := atcrypto.DecodeB64(ciphertext)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidEncoding, err, "atchops: decode envelope ciphertext")
	}
	cipher, err := atcrypto.NewCTRCipher(key, atcrypto.ZeroIV)
	if err != nil {
		return nil, err
	}
	return atcrypto.XORKeyStream(cipher, data), nil
}

func parsePrivateKey(b64 atcrypto.B64) (*rsa.PrivateKey, error) {
	der, err := atcrypto.DecodeB64(b64)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atchops: decode private key")
	}
	return atcrypto.ParseRSAPrivateKey(der)
}

func parsePublicKey(b64 atcrypto.B64) (*rsa.PublicKey, error) {
	der, err := atcrypto.DecodeB64(b64)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atchops: decode public key")
	}
	return atcrypto.ParseRSAPublicKey(der)
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}
