package atchops_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"

	"github.com/atsign-foundation/atclientgo/atcrypto"
	"github.com/stretchr/testify/require"
)

// generateTestKeyPairDER generates a fresh RSA keypair for round-trip
// tests and returns both halves as PKCS#8/PKIX DER, matching the
// encoding atchops expects to find inside base64 text.
func generateTestKeyPairDER(t *testing.T) (priv, pub atcrypto.Raw) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return atcrypto.Raw(privDER), atcrypto.Raw(pubDER)
}
