// Package atsecrets loads and holds the per-atSign key bundle: the
// pkam and encryption RSA keypairs (self-encrypted, as delivered by
// the atServer) and the self encryption key used to unwrap them.
package atsecrets

import (
	"encoding/json"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atchops"
	"github.com/atsign-foundation/atclientgo/atcrypto"
	"github.com/atsign-foundation/atclientgo/fileutil"
	"github.com/juju/errors"
)

// Secrets is the raw key bundle as persisted for an atSign, typically
// written out by an onboarding tool as a `.atKeys` file.
type Secrets struct {
	AesPkamPublicKey     atcrypto.B64 `json:"aesPkamPublicKey"`
	AesPkamPrivateKey    atcrypto.B64 `json:"aesPkamPrivateKey"`
	AesEncryptPublicKey  atcrypto.B64 `json:"aesEncryptPublicKey"`
	AesEncryptPrivateKey atcrypto.B64 `json:"aesEncryptPrivateKey"`
	SelfEncryptionKey    atcrypto.B64 `json:"selfEncryptionKey"`
}

// Keys holds a Secrets bundle after its self-encrypted private keys
// have been unwrapped, ready to drive pkam auth and envelope crypto.
type Keys struct {
	PkamPublicKey     atcrypto.B64
	PkamPrivateKey    atcrypto.B64
	EncryptPublicKey  atcrypto.B64
	EncryptPrivateKey atcrypto.B64
	SelfEncryptionKey atcrypto.B64
}

// requiredFields names the bundle's fields in the order client tools
// expect them validated, so a missing field error names the first one
// actually absent rather than an arbitrary one.
var requiredFields = []struct {
	name string
	get  func(Secrets) atcrypto.B64
}{
	{"aesPkamPublicKey", func(s Secrets) atcrypto.B64 { return s.AesPkamPublicKey }},
	{"aesPkamPrivateKey", func(s Secrets) atcrypto.B64 { return s.AesPkamPrivateKey }},
	{"aesEncryptPublicKey", func(s Secrets) atcrypto.B64 { return s.AesEncryptPublicKey }},
	{"aesEncryptPrivateKey", func(s Secrets) atcrypto.B64 { return s.AesEncryptPrivateKey }},
	{"selfEncryptionKey", func(s Secrets) atcrypto.B64 { return s.SelfEncryptionKey }},
}

// Parse decodes a secrets bundle from JSON, failing with the name of
// the first required field that is missing or empty.
func Parse(data []byte) (Secrets, error) {
	var s Secrets
	if err := json.Unmarshal(data, &s); err != nil {
		return Secrets{}, aterror.WithCause(aterror.InvalidConfig, err, "atsecrets: parse secrets bundle")
	}
	for _, f := range requiredFields {
		if f.get(s) == "" {
			return Secrets{}, aterror.Newf(aterror.InvalidConfig, "atsecrets: unable to find %s", f.name)
		}
	}
	return s, nil
}

// Load resolves a secrets bundle from a `file://`/`env://`-indirected
// location (or a literal path) and parses it.
func Load(location string) (Secrets, error) {
	resolved, err := fileutil.LoadConfigWithSchema(location)
	if err != nil {
		return Secrets{}, errors.Annotate(err, "atsecrets: resolve secrets location")
	}
	return Parse([]byte(resolved))
}

// Unwrap decrypts the bundle's self-encrypted private keys, producing
// the Keys a client uses for authentication and envelope crypto.
func Unwrap(s Secrets) (Keys, error) {
	pkamPriv, err := atchops.UnwrapSelfEncryptedPrivateKey(s.AesPkamPrivateKey, s.SelfEncryptionKey)
	if err != nil {
		return Keys{}, errors.Annotate(err, "atsecrets: unwrap pkam private key")
	}
	encryptPriv, err := atchops.UnwrapSelfEncryptedPrivateKey(s.AesEncryptPrivateKey, s.SelfEncryptionKey)
	if err != nil {
		return Keys{}, errors.Annotate(err, "atsecrets: unwrap encrypt private key")
	}
	return Keys{
		PkamPublicKey:     s.AesPkamPublicKey,
		PkamPrivateKey:    pkamPriv,
		EncryptPublicKey:  s.AesEncryptPublicKey,
		EncryptPrivateKey: encryptPriv,
		SelfEncryptionKey: s.SelfEncryptionKey,
	}, nil
}

// LoadAndUnwrap is the common entry point: load a bundle from location
// and unwrap its private keys in one call.
func LoadAndUnwrap(location string) (Keys, error) {
	s, err := Load(location)
	if err != nil {
		return Keys{}, err
	}
	return Unwrap(s)
}
