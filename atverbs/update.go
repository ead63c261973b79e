package atverbs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atsign-foundation/atclientgo/atcrypto"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/attransport"
)

// UpdateOptions carries the optional update sub-verbs, encoded onto
// the wire in the fixed order ttl, ttb, ttr, ccd (§4.6/§6).
type UpdateOptions struct {
	TTL *int64
	TTB *int64
	TTR *int64
	CCD *bool
}

// Update issues `update[:ttl:N][:ttb:N][:ttr:N][:ccd:B]:<key> <value>`
// and returns the server's commit-id. Text values travel verbatim;
// binary values are base64-encoded before inclusion (§4.6).
func Update(t *attransport.Transport, key atkey.AtKey, value atkey.AtValue, opts UpdateOptions) (string, error) {
	var b strings.Builder
	b.WriteString("update")
	if opts.TTL != nil {
		fmt.Fprintf(&b, ":ttl:%d", *opts.TTL)
	}
	if opts.TTB != nil {
		fmt.Fprintf(&b, ":ttb:%d", *opts.TTB)
	}
	if opts.TTR != nil {
		fmt.Fprintf(&b, ":ttr:%d", *opts.TTR)
	}
	if opts.CCD != nil {
		fmt.Fprintf(&b, ":ccd:%s", strconv.FormatBool(*opts.CCD))
	}
	b.WriteByte(':')
	b.WriteString(key.Format())
	b.WriteByte(' ')

	if value.IsBinary {
		b.WriteString(string(atcrypto.EncodeB64(value.Binary)))
	} else {
		b.WriteString(value.Text)
	}

	if err := t.Send(b.String()); err != nil {
		return "", err
	}
	line, err := t.ReadLine()
	if err != nil {
		return "", err
	}
	return parseResponse(line, "data:", "@data:")
}
