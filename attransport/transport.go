// Package attransport implements the line-delimited TLS transport a
// client session is built on: exactly one stream per session, a
// send/read-line pairing with no pipelining, and a pluggable dial
// backend so tests can substitute an in-memory scripted connection.
package attransport

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/xlog"
	"github.com/juju/errors"
)

var logger = xlog.NewPackageLogger("github.com/atsign-foundation/atclientgo", "attransport")

// Conn is the minimal capability a TLS backend must provide: a byte
// stream plus Close. net.Conn satisfies this, as does any in-memory
// scripted connection used in tests.
type Conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Dialer opens a Conn to host:port. The default implementation dials
// real TLS; tests substitute a Dialer that returns a scripted Conn.
type Dialer interface {
	Dial(ctx context.Context, host string, port int) (Conn, error)
}

// TLSDialer is the production Dialer: standard root-store validation,
// SNI set to the dialed host, TLS 1.2 minimum.
type TLSDialer struct {
	// Config is cloned and augmented with ServerName/MinVersion per
	// dial; a nil Config dials with defaults.
	Config *tls.Config
}

// Dial opens a validated TLS connection to host:port.
func (d TLSDialer) Dial(ctx context.Context, host string, port int) (Conn, error) {
	cfg := d.Config.Clone()
	if cfg == nil {
		cfg = &tls.Config{}
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	d2 := tls.Dialer{Config: cfg}
	conn, err := d2.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, aterror.WithCause(aterror.Transport, err, "attransport: dial "+addr)
	}
	return conn, nil
}

// Transport owns a single line-delimited stream. It is not safe for
// concurrent use: requests and responses are strictly paired.
type Transport struct {
	conn   Conn
	reader *bufio.Reader
}

// Connect opens a Transport to host:port using dialer.
func Connect(ctx context.Context, dialer Dialer, host string, port int) (*Transport, error) {
	conn, err := dialer.Dial(ctx, host, port)
	if err != nil {
		return nil, err
	}
	logger.Debugf("connected to %s:%d", host, port)
	return &Transport{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Send writes line to the stream, appending a trailing newline if line
// does not already carry one, and flushes immediately.
func (t *Transport) Send(line string) error {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := t.conn.Write([]byte(line)); err != nil {
		return aterror.WithCause(aterror.Transport, err, "attransport: send")
	}
	return nil
}

// ReadLine reads up to and including the next newline. The returned
// string retains the trailing newline; callers strip it along with any
// other framing they expect.
func (t *Transport) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", aterror.WithCause(aterror.Transport, err, "attransport: read line")
	}
	return line, nil
}

// Close releases the underlying connection. A Transport must not be
// used after Close; per §5, a client that hits any Transport error or
// is cancelled mid-operation must be discarded rather than reused.
func (t *Transport) Close() error {
	if err := t.conn.Close(); err != nil {
		return errors.Trace(err)
	}
	return nil
}

var _ Dialer = TLSDialer{}
