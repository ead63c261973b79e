package attransport_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/atsign-foundation/atclientgo/attransport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedConn is an in-memory Conn: reads come from a fixed script,
// writes are captured for assertions.
type scriptedConn struct {
	r      *bytes.Reader
	writes [][]byte
	closed bool
}

func (c *scriptedConn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *scriptedConn) Write(p []byte) (int, error) { c.writes = append(c.writes, append([]byte(nil), p...)); return len(p), nil }
func (c *scriptedConn) Close() error                { c.closed = true; return nil }

type scriptedDialer struct{ conn *scriptedConn }

func (d scriptedDialer) Dial(ctx context.Context, host string, port int) (attransport.Conn, error) {
	return d.conn, nil
}

func Test_Send_AppendsNewlineIfAbsent(t *testing.T) {
	conn := &scriptedConn{r: bytes.NewReader(nil)}
	tr, err := attransport.Connect(context.Background(), scriptedDialer{conn}, "example.org", 1234)
	require.NoError(t, err)

	require.NoError(t, tr.Send("from:alice"))
	require.Len(t, conn.writes, 1)
	assert.Equal(t, "from:alice\n", string(conn.writes[0]))
}

func Test_Send_DoesNotDoubleNewline(t *testing.T) {
	conn := &scriptedConn{r: bytes.NewReader(nil)}
	tr, err := attransport.Connect(context.Background(), scriptedDialer{conn}, "example.org", 1234)
	require.NoError(t, err)

	require.NoError(t, tr.Send("from:alice\n"))
	assert.Equal(t, "from:alice\n", string(conn.writes[0]))
}

func Test_ReadLine_ReturnsThroughNewline(t *testing.T) {
	conn := &scriptedConn{r: bytes.NewReader([]byte("@data:challenge-text\nmore-data\n"))}
	tr, err := attransport.Connect(context.Background(), scriptedDialer{conn}, "example.org", 1234)
	require.NoError(t, err)

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "@data:challenge-text\n", line)

	line, err = tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "more-data\n", line)
}

func Test_ReadLine_PropagatesEOF(t *testing.T) {
	conn := &scriptedConn{r: bytes.NewReader(nil)}
	tr, err := attransport.Connect(context.Background(), scriptedDialer{conn}, "example.org", 1234)
	require.NoError(t, err)

	_, err = tr.ReadLine()
	require.Error(t, err)
}

func Test_Close(t *testing.T) {
	conn := &scriptedConn{r: bytes.NewReader(nil)}
	tr, err := attransport.Connect(context.Background(), scriptedDialer{conn}, "example.org", 1234)
	require.NoError(t, err)

	require.NoError(t, tr.Close())
	assert.True(t, conn.closed)
}
