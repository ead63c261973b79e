package atverbs

import (
	"fmt"

	"github.com/atsign-foundation/atclientgo/attransport"
)

// From issues `from:<atsign-label>` and returns the opaque challenge
// string the server returns, to be signed and submitted via Pkam.
func From(t *attransport.Transport, atSignLabel string) (string, error) {
	if err := t.Send(fmt.Sprintf("from:%s", atSignLabel)); err != nil {
		return "", err
	}
	line, err := t.ReadLine()
	if err != nil {
		return "", err
	}
	return parseResponse(line, "@data:", "data:")
}
