package transport

import (
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/config"
	"github.com/relaypoint/telnetd/internal/logger"
	"github.com/relaypoint/telnetd/internal/nodes"
	"github.com/relaypoint/telnetd/internal/session"
	"github.com/relaypoint/telnetd/telnet"
)

// Server accepts TCP connections and, for each one, drives a telnet.Session
// over a netTransport and hands the decoded byte stream off to the demo
// REPL. It is the glue layer spec.md §1 keeps outside the core package.
type Server struct {
	config config.ListenerConfig
	ln     net.Listener
}

func NewServer(cfg config.ListenerConfig) *Server {
	return &Server{config: cfg}
}

func (s *Server) ListenAndServe() error {
	app.Logger.Info("telnet server listening", "addr", s.config.Addr)

	var err error
	s.ln, err = net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	defer s.ln.Close()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if opErr, ok := err.(*net.OpError); ok && opErr.Err.Error() == "use of closed network connection" {
				return nil
			}
			app.Logger.Error("accept error", "err", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) Stop() error {
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	node, err := app.Nodes.Acquire(conn.RemoteAddr().String())
	if err != nil {
		app.Logger.Warn("connection rejected: session table full", "addr", conn.RemoteAddr())
		return
	}
	defer app.Nodes.Release(node.ID)

	sessionLogger := logger.ForSession(app.Logger, node.ID, conn.RemoteAddr().String())

	tr := newNetTransport(conn)
	pr, pw := io.Pipe()

	sess := telnet.NewSession(tr,
		telnet.WithTTY(s.config.TTY),
		telnet.WithConvertLF(s.config.ConvertLF),
		telnet.WithDebug(s.config.Debug),
	)

	node.Conn = &sessionConnection{conn: conn, session: sess}

	sess.On("data", func(ev telnet.OptionEvent) {
		if _, err := pw.Write(ev.Data); err != nil {
			sessionLogger.Debug("pipe write after close", "err", err)
		}
	})
	onTerminalSettle := func(telnet.OptionEvent) {
		app.Nodes.SetTerminalInfo(node.ID, nodes.TerminalInfo{
			Type:   sess.Terminal(),
			Width:  sess.Columns(),
			Height: sess.Rows(),
			Raw:    sess.IsRaw(),
		})
	}
	sess.On("window size", onTerminalSettle)
	sess.On("terminal type", onTerminalSettle)
	sess.On("error", func(ev telnet.OptionEvent) {
		sessionLogger.Warn("telnet parse error", "err", ev.Err)
	})
	sess.OnSimpleCommand(func(cmd byte) {
		if cmd == telnet.AYT {
			if _, err := sess.Write([]byte("\r\n[Yes]\r\n")); err != nil {
				sessionLogger.Debug("AYT reply failed", "err", err)
			}
		}
	})
	if s.config.Debug {
		sess.On("debug", func(ev telnet.OptionEvent) {
			sessionLogger.Debug("telnet trace", "kind", ev.Kind, "command", ev.Command, "option", ev.Option)
		})
	}

	sessionLogger.Info("session opened")
	defer sessionLogger.Info("session closed")

	go s.feedLoop(conn, sess, pw, sessionLogger)

	session.Run(sess, pr, node, s.config.InitialView)
	_ = sess.Destroy()
}

// feedLoop reads raw bytes off conn and hands them to the Session's
// scanner. It owns pw and closes it once the connection ends, which
// unblocks the REPL's pr.Read with io.EOF.
func (s *Server) feedLoop(conn net.Conn, sess *telnet.Session, pw *io.PipeWriter, log *slog.Logger) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			sess.Feed(buf[:n])
		}
		if err != nil {
			sess.HandleEnd()
			if err == io.EOF {
				pw.Close()
			} else {
				pw.CloseWithError(fmt.Errorf("connection read: %w", err))
			}
			return
		}
	}
}
