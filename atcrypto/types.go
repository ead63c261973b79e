// Package atcrypto implements the primitive cryptographic ceremonies the
// protocol is built from: base64/UTF-8 transcoding, RSA key parsing,
// signing and PKCS#1 v1.5 encryption, and AES-256-CTR. The ceremony
// layer (atchops) composes these into the self-encryption-key unwrap,
// pkam challenge signing, and envelope encrypt/decrypt operations.
//
// Every value that crosses an encoding boundary is wrapped in one of
// the named types below so a mistaken encoding transition -- treating
// base64 text as raw bytes, or vice versa -- is a compile error rather
// than a ceremony that silently produces garbage.
package atcrypto

// B64 is base64-encoded text, standard alphabet, as it appears on the
// wire and in secrets files.
type B64 string

// UTF8 is decoded text meant to be interpreted as UTF-8, e.g. a record
// value or a PEM/DER blob that has been re-encoded as text.
type UTF8 string

// Raw is decoded binary data with no further encoding.
type Raw []byte
