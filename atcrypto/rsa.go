package atcrypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"

	"github.com/atsign-foundation/atclientgo/aterror"
)

// ParseRSAPrivateKey parses a PKCS#8 DER-encoded RSA private key, as
// produced by unwrapping a self-encrypted pkam/encrypt private key.
func ParseRSAPrivateKey(der Raw) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: parse rsa private key")
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, aterror.New(aterror.InvalidKey, "atcrypto: parsed key is not RSA")
	}
	if err := rsaKey.Validate(); err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: rsa private key fails validation")
	}
	return rsaKey, nil
}

// ParseRSAPublicKey parses an X.509 SubjectPublicKeyInfo DER-encoded
// RSA public key, as received from a peer's atServer lookup.
func ParseRSAPublicKey(der Raw) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: parse rsa public key")
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, aterror.New(aterror.InvalidKey, "atcrypto: parsed key is not RSA")
	}
	return rsaKey, nil
}

// RSASign signs data with SHA-256 and PKCS#1 v1.5 padding, then
// self-verifies the signature before returning it: a signature this
// ceremony produced but cannot verify against its own key must never
// reach the wire.
func RSASign(data Raw, key *rsa.PrivateKey) (Raw, error) {
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: rsa sign")
	}
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig); err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: rsa sign produced an unverifiable signature")
	}
	return sig, nil
}

// RSAVerify verifies a SHA-256/PKCS#1 v1.5 signature against a public
// key, reporting success or failure without distinguishing the reason.
func RSAVerify(data, signature Raw, key *rsa.PublicKey) bool {
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], signature) == nil
}

// RSAEncrypt encrypts data with PKCS#1 v1.5 padding, as required to
// wrap a symmetric key for a peer (the protocol does not use OAEP).
func RSAEncrypt(data Raw, key *rsa.PublicKey) (Raw, error) {
	out, err := rsa.EncryptPKCS1v15(rand.Reader, key, data)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: rsa encrypt")
	}
	return out, nil
}

// RSADecrypt decrypts PKCS#1 v1.5-padded ciphertext, as required to
// unwrap a symmetric key a peer wrapped for us.
func RSADecrypt(data Raw, key *rsa.PrivateKey) (Raw, error) {
	out, err := rsa.DecryptPKCS1v15(rand.Reader, key, data)
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidKey, err, "atcrypto: rsa decrypt")
	}
	return out, nil
}
