package telnet

import "io"

// Transport is the duplex byte stream the core consumes and writes to. It
// is the external collaborator named in §6: accepting connections, the
// concrete socket, pause/resume flow control and lifecycle signals all
// belong to whatever implements this interface, not to the Session.
type Transport interface {
	io.Writer

	Pause()
	Resume()
	End() error
	Destroy() error

	Readable() bool
	Writable() bool
	Destroyed() bool
}
