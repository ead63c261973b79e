// Package atverbs implements one submodule per verb of the line-oriented
// protocol: from, pkam, scan, lookup, llookup, plookup, update. Each
// verb formats a request line, sends it over a attransport.Transport,
// and parses the single response line through the shared response
// parser below.
package atverbs

import (
	"strings"
	"unicode/utf8"

	"github.com/atsign-foundation/atclientgo/aterror"
)

// parseResponse applies the shared response grammar (§4.6):
//  1. the line must be valid UTF-8;
//  2. an "error:AT####..." line maps to a Server error via aterror;
//  3. otherwise the line must start with one of the accepted prefixes;
//  4. the prefix is stripped and the remainder trimmed of surrounding
//     whitespace (including the trailing newline) and returned.
func parseResponse(line string, acceptedPrefixes ...string) (string, error) {
	if !utf8.ValidString(line) {
		return "", aterror.New(aterror.ProtocolError, "atverbs: response is not valid UTF-8")
	}
	trimmed := strings.TrimRight(line, "\r\n")

	if strings.HasPrefix(trimmed, "error:") {
		body := strings.TrimPrefix(trimmed, "error:")
		code := body
		if len(body) > 6 {
			code = body[:6]
		}
		return "", aterror.ServerError(code)
	}

	for _, prefix := range acceptedPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), nil
		}
	}
	return "", aterror.Newf(aterror.ProtocolError,
		"atverbs: response %q does not carry an expected prefix %v", trimmed, acceptedPrefixes)
}
