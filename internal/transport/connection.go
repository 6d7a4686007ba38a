package transport

import (
	"net"
	"strings"

	"github.com/relaypoint/telnetd/internal/nodes"
	"github.com/relaypoint/telnetd/telnet"
)

// sessionConnection implements nodes.Connection over a telnet.Session,
// letting internal/modules and internal/views render negotiated state
// without importing the telnet package directly.
type sessionConnection struct {
	conn    net.Conn
	session *telnet.Session
}

func (c *sessionConnection) Send(msg string) error {
	_, err := c.session.Write([]byte(msg + "\r\n"))
	return err
}

func (c *sessionConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *sessionConnection) GetTerminalInfo() nodes.TerminalInfo {
	return nodes.TerminalInfo{
		Type:   c.session.Terminal(),
		Width:  c.session.Columns(),
		Height: c.session.Rows(),
		Raw:    c.session.IsRaw(),
	}
}

// legacyTerminals lists TERMINAL-TYPE names historically associated with
// CP437 line-drawing clients rather than a UTF-8-capable one. Anything
// else is treated as UTF-8-capable.
var legacyTerminals = map[string]bool{
	"ansi":     true,
	"ansi-bbs": true,
	"pcansi":   true,
	"vt100":    true,
	"vt102":    true,
}

func (c *sessionConnection) IsUTF8() bool {
	return !legacyTerminals[strings.ToLower(c.session.Terminal())]
}
