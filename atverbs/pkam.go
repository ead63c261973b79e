package atverbs

import (
	"fmt"
	"strings"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/attransport"
)

// Pkam issues `pkam:<base64-signature>`. A response body containing
// "success" authenticates the session; any other success-prefixed
// content is an AuthFailure.
func Pkam(t *attransport.Transport, signature string) error {
	if err := t.Send(fmt.Sprintf("pkam:%s", signature)); err != nil {
		return err
	}
	line, err := t.ReadLine()
	if err != nil {
		return err
	}
	body, err := parseResponse(line, "data:", "@data:")
	if err != nil {
		return err
	}
	if !strings.Contains(body, "success") {
		return aterror.Newf(aterror.AuthFailure, "atverbs: pkam authentication rejected: %q", body)
	}
	return nil
}
