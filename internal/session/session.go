// Package session runs the line-oriented demo shell each negotiated
// telnet.Session is handed off to once its transport adapter is wired up.
package session

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/modules"
	"github.com/relaypoint/telnetd/internal/nodes"
	"github.com/relaypoint/telnetd/internal/views"
	"github.com/relaypoint/telnetd/telnet"
)

// readWriter pairs the decoded-data pipe reader with the Session's own
// Write (which applies convertLF) into the io.ReadWriter term.Terminal
// wants.
type readWriter struct {
	io.Reader
	*telnet.Session
}

func (rw readWriter) Write(p []byte) (int, error) { return rw.Session.Write(p) }

// Session is one REPL loop bound to a negotiated telnet.Session.
type Session struct {
	rw   readWriter
	sess *telnet.Session
	node *nodes.Node
	vm   *views.Manager
	term *term.Terminal
}

// Run starts the REPL for a connected peer. r yields the telnet.Session's
// decoded "data" events; sess is the negotiation engine itself, already
// wired to a transport.
func Run(sess *telnet.Session, r io.Reader, node *nodes.Node, initialView string) {
	registry := modules.NewRegistry()
	registry.Register(modules.NewDebugModule(sess))

	s := &Session{
		rw:   readWriter{Reader: r, Session: sess},
		sess: sess,
		node: node,
		vm:   views.NewManager(app.Config.Views, registry, initialView),
	}
	s.run()
}

func (s *Session) run() {
	if s.vm.Current() != "" {
		if err := s.vm.RenderCurrent(s.rw, s.node); err != nil {
			app.Logger.Error("failed to render initial view", "view", s.vm.Current(), "err", err)
		}
	}

	s.term = term.NewTerminal(s.rw, fmt.Sprintf("[session %d] > ", s.node.ID))

	for {
		line, err := s.term.ReadLine()
		if err != nil {
			if err != io.EOF {
				app.Logger.Error("error reading line", "err", err)
			}
			return
		}

		cmd := strings.TrimSpace(line)
		if cmd == "exit" || cmd == "quit" {
			s.term.Write([]byte("Goodbye!\r\n"))
			return
		}

		if s.vm.Current() != "" {
			handled, err := s.vm.HandleInput(s.rw, cmd, s.node)
			if err == nil && handled {
				s.vm.RenderCurrent(s.rw, s.node)
				continue
			}
		}

		fmt.Fprintf(s.term, "Unknown command: %s\r\n", cmd)
	}
}
