package nodes

import (
	"fmt"
	"net"
)

// TerminalInfo is the negotiated peer state a Connection currently knows,
// a snapshot of the corresponding telnet.Session fields.
type TerminalInfo struct {
	Type   string
	Width  int
	Height int
	Raw    bool
}

// Connection is what a transport adapter exposes about one connected
// peer, independent of the telnet package itself — it lets
// internal/modules and internal/views render session state without
// importing telnet directly.
type Connection interface {
	Send(msg string) error
	RemoteAddr() net.Addr
	GetTerminalInfo() TerminalInfo
	IsUTF8() bool
}

// Node is one slot in the session registry: a stable ID for the monitor
// TUI to address, the live Connection (nil once released), and the
// database row tracking when it connected.
type Node struct {
	ID       int
	Conn     Connection
	RecordID uint
}

func (n *Node) String() string {
	if n.Conn == nil {
		return fmt.Sprintf("session %d (disconnected)", n.ID)
	}
	return fmt.Sprintf("session %d (%s)", n.ID, n.Conn.RemoteAddr())
}
