package atverbs

import (
	"encoding/json"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/attransport"
	"github.com/atsign-foundation/atclientgo/xlog"
)

var logger = xlog.NewPackageLogger("github.com/atsign-foundation/atclientgo", "atverbs")

// Scan issues `scan[:showhidden:true][ <regex>]` and parses the
// response's JSON array of rendered AtKeys. Elements that fail to
// parse are dropped with a logged warning rather than failing the
// whole scan (§8 property 9).
func Scan(t *attransport.Transport, showHidden bool, regex string) ([]atkey.AtKey, error) {
	req := "scan"
	if showHidden {
		req += ":showhidden:true"
	}
	if regex != "" {
		req += " " + regex
	}
	if err := t.Send(req); err != nil {
		return nil, err
	}
	line, err := t.ReadLine()
	if err != nil {
		return nil, err
	}
	body, err := parseResponse(line, "data:", "@data:")
	if err != nil {
		return nil, err
	}

	var rendered []string
	if err := json.Unmarshal([]byte(body), &rendered); err != nil {
		return nil, aterror.WithCause(aterror.ProtocolError, err, "atverbs: parse scan response")
	}

	keys := make([]atkey.AtKey, 0, len(rendered))
	for _, r := range rendered {
		k, err := atkey.Parse(r)
		if err != nil {
			logger.Warningf("scan: dropping unparsable key %q: %v", r, err)
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}
