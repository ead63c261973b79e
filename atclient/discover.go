package atclient

import (
	"context"
	"strconv"
	"strings"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atsign"
	"github.com/atsign-foundation/atclientgo/attransport"
)

// resolveServer asks the root server which atServer host:port currently
// serves the given atSign (§4.7 ResolveRoot/ResolveServer). The root
// session is transient: one request, one line of response, then close.
func resolveServer(ctx context.Context, dialer attransport.Dialer, root string, target atsign.AtSign) (string, int, error) {
	host, port, err := splitHostPort(root)
	if err != nil {
		return "", 0, err
	}

	tr, err := attransport.Connect(ctx, dialer, host, port)
	if err != nil {
		return "", 0, err
	}
	defer tr.Close()

	if err := tr.Send(target.WithoutPrefix()); err != nil {
		return "", 0, err
	}
	line, err := tr.ReadLine()
	if err != nil {
		return "", 0, err
	}
	line = strings.TrimSpace(line)

	if line == "@null" {
		return "", 0, aterror.Newf(aterror.UnknownAtSign, "atclient: root server has no entry for %s", target)
	}

	line = strings.TrimPrefix(line, "@")
	return splitHostPort(line)
}

func splitHostPort(addr string) (string, int, error) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 {
		return "", 0, aterror.Newf(aterror.ProtocolError, "atclient: malformed host:port %q", addr)
	}
	host := addr[:idx]
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return "", 0, aterror.Newf(aterror.ProtocolError, "atclient: malformed port in %q", addr)
	}
	return host, port, nil
}
