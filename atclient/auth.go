package atclient

import (
	"context"

	"github.com/atsign-foundation/atclientgo/atchops"
	"github.com/atsign-foundation/atclientgo/atverbs"
)

// authenticate runs the pkam ceremony (§4.1/§4.7): request a challenge
// with from, sign it with the pkam private key, and submit it with
// pkam. ctx is accepted for symmetry with the rest of the dial state
// machine; the verb exchange itself is synchronous over the transport.
func (c *Client) authenticate(ctx context.Context) error {
	challenge, err := atverbs.From(c.transport, c.atSign.WithoutPrefix())
	if err != nil {
		return err
	}

	signature, err := atchops.SignChallenge(challenge, c.keys.PkamPrivateKey)
	if err != nil {
		return err
	}

	return atverbs.Pkam(c.transport, string(signature))
}
