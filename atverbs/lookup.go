package atverbs

import (
	"encoding/json"
	"fmt"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/atsign"
	"github.com/atsign-foundation/atclientgo/attransport"
)

// Lookup issues `lookup[:meta|:all]:<key>`, resolving references
// server-side. Use for records shared *with* this client (or public
// records, when unauthenticated).
func Lookup(t *attransport.Transport, selector Selector, key atkey.AtKey) (string, error) {
	return lookupVerb(t, "lookup", selector, key.WireForLookup())
}

// LLookup issues `llookup[:meta|:all]:<key>`, fetching the literal
// local record without reference resolution. Required for symmetric
// key records during put's bootstrap phase.
func LLookup(t *attransport.Transport, selector Selector, key atkey.AtKey) (string, error) {
	return lookupVerb(t, "llookup", selector, key.WireForLookup())
}

// PLookup issues `plookup[:meta|:all]:<record>[.<ns>]@<owner>`, a
// peer's public record. There is no visibility prefix: public records
// have none, and plookup only ever targets public records.
func PLookup(t *attransport.Transport, selector Selector, recordID, namespace string, owner atsign.AtSign) (string, error) {
	target := recordID
	if namespace != "" {
		target = target + "." + namespace
	}
	target = target + "@" + owner.WithoutPrefix()
	return lookupVerb(t, "plookup", selector, target)
}

func lookupVerb(t *attransport.Transport, verb string, selector Selector, target string) (string, error) {
	req := fmt.Sprintf("%s%s:%s", verb, selector.verbSuffix(), target)
	if err := t.Send(req); err != nil {
		return "", err
	}
	line, err := t.ReadLine()
	if err != nil {
		return "", err
	}
	return parseResponse(line, "data:", "@data:")
}

// ParseMetadata decodes a `:meta` selector's JSON response body into a
// RecordMetadata.
func ParseMetadata(body string) (atkey.RecordMetadata, error) {
	var m atkey.RecordMetadata
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return atkey.RecordMetadata{}, aterror.WithCause(aterror.ProtocolError, err, "atverbs: parse metadata response")
	}
	return m, nil
}

// allResponse is the JSON shape of an `:all` selector response: the
// value alongside its metadata.
type allResponse struct {
	Data     string               `json:"data"`
	Metadata atkey.RecordMetadata `json:"metaData"`
}

// ParseAll decodes an `:all` selector's JSON response body into a
// value string and its RecordMetadata.
func ParseAll(body string) (string, atkey.RecordMetadata, error) {
	var r allResponse
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return "", atkey.RecordMetadata{}, aterror.WithCause(aterror.ProtocolError, err, "atverbs: parse all response")
	}
	return r.Data, r.Metadata, nil
}
