package atclient

import (
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/atverbs"
)

// Scan lists the keys visible to this connection, optionally filtered
// by a server-side regex. showHidden includes internal/reserved keys
// that are normally excluded.
func (c *Client) Scan(showHidden bool, regex string) ([]atkey.AtKey, error) {
	keys, err := atverbs.Scan(c.transport, showHidden, regex)
	if err != nil {
		return nil, err
	}
	c.audit(eventScan, "scan")
	return keys, nil
}
