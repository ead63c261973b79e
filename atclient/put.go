package atclient

import (
	"strconv"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atchops"
	"github.com/atsign-foundation/atclientgo/atcrypto"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/atsign"
	"github.com/atsign-foundation/atclientgo/atverbs"
	"github.com/atsign-foundation/atclientgo/audit"
)

// Put writes value at key (§4.7), returning the server's commit-id.
// Shared keys go through the symmetric-key bootstrap and envelope
// encryption; Public, Private and Internal keys are updated verbatim.
//
// The audit event for this write is buffered in a Collector rather
// than emitted immediately, since the commit-id the server assigns
// isn't known until the update response comes back. Submit stamps
// that commit-id onto the event as its raft index before handing it
// to the client's real auditor.
func (c *Client) Put(key atkey.AtKey, value string) (string, error) {
	collector := c.newCollector()
	collector.Event(audit.New(c.atSign.WithPrefix(), c.contextID, clientSource, eventPut, 0, "put "+key.Format()))

	var (
		commitID string
		err      error
	)
	if key.Visibility.Kind == atkey.Shared {
		commitID, err = c.putShared(key, value)
	} else {
		commitID, err = atverbs.Update(c.transport, key, atkey.NewTextValue(value), atverbs.UpdateOptions{})
	}
	if err != nil {
		return "", err
	}

	commitIndex, _ := strconv.ParseUint(commitID, 10, 64)
	collector.Submit(commitIndex)
	return commitID, nil
}

// putShared runs the two-phase put_record ceremony for Shared keys
// (§4.7). Phase A resolves the symmetric key shared with the peer,
// bootstrapping it on first use; Phase B envelope-encrypts the value
// and updates the target key.
func (c *Client) putShared(key atkey.AtKey, value string) (string, error) {
	symmetricKey, err := c.resolveOrBootstrapSharedKey(key.Visibility.With)
	if err != nil {
		return "", err
	}

	ciphertext, err := atchops.EncryptEnvelope(value, symmetricKey)
	if err != nil {
		return "", err
	}

	return atverbs.Update(c.transport, key, atkey.NewTextValue(string(ciphertext)), atverbs.UpdateOptions{})
}

// resolveOrBootstrapSharedKey returns the symmetric key shared with
// peer, minting and distributing one if this is the first record
// shared with peer (§4.7 Phase A). The local locator is
// @peer:shared_key@self -- our own copy, wrapped for ourselves; the
// peer's locator is @self:shared_key@peer -- their copy, wrapped for
// them. This asymmetric shape is the protocol's, not a naming slip.
func (c *Client) resolveOrBootstrapSharedKey(peer atsign.AtSign) (atcrypto.B64, error) {
	localLocator, err := atkey.NewSharedKey("shared_key", "", c.atSign, peer)
	if err != nil {
		return "", err
	}

	wrapped, err := atverbs.LLookup(c.transport, atverbs.SelectorData, localLocator)
	if err == nil {
		return atchops.UnwrapSymmetricKey(atcrypto.B64(wrapped), c.keys.EncryptPrivateKey)
	}
	if !aterror.IsCode(err, aterror.CodeKeyNotFound) {
		return "", err
	}

	symmetricKey, err := atchops.CreateNewSharedSymmetricKey()
	if err != nil {
		return "", err
	}

	wrappedForSelf, err := atchops.WrapSymmetricKey(symmetricKey, c.keys.EncryptPublicKey)
	if err != nil {
		return "", err
	}
	if _, err := atverbs.Update(c.transport, localLocator, atkey.NewTextValue(string(wrappedForSelf)), atverbs.UpdateOptions{}); err != nil {
		return "", err
	}

	peerPublicKeyB64, err := atverbs.PLookup(c.transport, atverbs.SelectorData, "publickey", "", peer)
	if err != nil {
		return "", err
	}
	wrappedForPeer, err := atchops.WrapSymmetricKey(symmetricKey, atcrypto.B64(peerPublicKeyB64))
	if err != nil {
		return "", err
	}

	peerLocator, err := atkey.NewSharedKey("shared_key", "", peer, c.atSign)
	if err != nil {
		return "", err
	}
	ttr := SharedKeyCacheTTR
	if _, err := atverbs.Update(c.transport, peerLocator, atkey.NewTextValue(string(wrappedForPeer)), atverbs.UpdateOptions{TTR: &ttr}); err != nil {
		return "", err
	}

	return symmetricKey, nil
}
