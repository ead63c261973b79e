package atcrypto

import (
	"encoding/base64"

	"github.com/atsign-foundation/atclientgo/aterror"
)

// DecodeB64 decodes standard-alphabet base64 text to raw bytes.
func DecodeB64(data B64) (Raw, error) {
	out, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, aterror.WithCause(aterror.InvalidEncoding, err, "atcrypto: base64 decode")
	}
	return Raw(out), nil
}

// EncodeB64 encodes raw bytes as standard-alphabet base64 text.
func EncodeB64(data Raw) B64 {
	return B64(base64.StdEncoding.EncodeToString(data))
}
