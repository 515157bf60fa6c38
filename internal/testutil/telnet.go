package testutil

import (
	"bytes"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
)

// TelnetClient is a scripted Telnet client for integration tests.
type TelnetClient struct {
	conn    net.Conn
	t       *testing.T
	pending bytes.Buffer
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	return AttachTelnetClient(t, conn)
}

// AttachTelnetClient drives an already connected client end, such as one
// half of a net.Pipe.
//
// Postcondition: conn is closed when the test ends.
func AttachTelnetClient(t *testing.T, conn net.Conn) *TelnetClient {
	t.Helper()
	t.Cleanup(func() { conn.Close() })
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil reads until the plain text (IAC sequences and ANSI colors
// removed) contains substr, and returns the plain text up to and including
// the match. Anything read past the match is kept for the next call.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the accumulated plain output, or fails on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	tmp := make([]byte, 1024)
	for {
		plain := telnet.StripANSI(string(telnet.FilterIAC(c.pending.Bytes())))
		if i := strings.Index(plain, substr); i >= 0 {
			c.pending.Reset()
			c.pending.WriteString(plain[i+len(substr):])
			return plain[:i+len(substr)]
		}
		n, err := c.conn.Read(tmp)
		if n > 0 {
			c.pending.Write(tmp[:n])
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, plain, err)
		}
	}
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
// Postcondition: text + \r\n is written to the connection.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
