package atclient

import (
	"strings"

	"github.com/atsign-foundation/atclientgo/atchops"
	"github.com/atsign-foundation/atclientgo/atcrypto"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/attransport"
	"github.com/atsign-foundation/atclientgo/atverbs"
)

// Get fetches a record by key (§4.7). Shared keys go through the
// envelope-decrypt ceremony; Public, Private and Internal keys are
// returned as the server sent them.
func (c *Client) Get(key atkey.AtKey, selector atverbs.Selector) (atkey.AtRecord, error) {
	var (
		value atkey.AtValue
		err   error
	)
	switch key.Visibility.Kind {
	case atkey.Shared:
		value, err = c.getShared(key, selector)
	case atkey.Internal:
		value, err = c.getPlain(key, selector, atverbs.LLookup)
	default: // Public, Private
		value, err = c.getPlain(key, selector, atverbs.Lookup)
	}
	if err != nil {
		return atkey.AtRecord{}, err
	}
	c.audit(eventGet, "get "+key.Format())
	return atkey.AtRecord{Key: key, Value: value}, nil
}

// lookupVerb is the shape shared by atverbs.Lookup and atverbs.LLookup.
type lookupVerb func(t *attransport.Transport, selector atverbs.Selector, key atkey.AtKey) (string, error)

// getPlain issues a single lookup for non-Shared keys. The verb to use
// differs by visibility: Internal records are always local, so llookup
// is the only one that can find them; Public and Private records may
// be resolved remotely via lookup.
func (c *Client) getPlain(key atkey.AtKey, selector atverbs.Selector, verb lookupVerb) (atkey.AtValue, error) {
	body, err := verb(c.transport, selector, key)
	if err != nil {
		return atkey.AtValue{}, err
	}
	return atkey.NewTextValue(body), nil
}

// getShared runs the 5-step get_record ceremony for Shared keys (§4.7):
// locate the symmetric key the owner wrapped for us, fetch the target
// record, unwrap the key with our encrypt private key, and decrypt the
// envelope.
func (c *Client) getShared(key atkey.AtKey, selector atverbs.Selector) (atkey.AtValue, error) {
	locator, err := atkey.SharedKeyLocator(key.Owner, c.atSign)
	if err != nil {
		return atkey.AtValue{}, err
	}

	wrappedKey, err := atverbs.Lookup(c.transport, atverbs.SelectorData, locator)
	if err != nil {
		return atkey.AtValue{}, err
	}

	ciphertext, err := atverbs.Lookup(c.transport, selector, key)
	if err != nil {
		return atkey.AtValue{}, err
	}

	symmetricKey, err := atchops.UnwrapSymmetricKey(atcrypto.B64(wrappedKey), c.keys.EncryptPrivateKey)
	if err != nil {
		return atkey.AtValue{}, err
	}

	plain, err := atchops.DecryptEnvelope(atcrypto.B64(ciphertext), symmetricKey)
	if err != nil {
		return atkey.AtValue{}, err
	}

	return atkey.NewTextValue(strings.TrimRight(plain, "\r\n")), nil
}
