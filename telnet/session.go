package telnet

import (
	"sync"
)

// Listener receives a published OptionEvent. Handlers registered under an
// alias and handlers registered under the canonical name receive the same
// events — see names.go.
type Listener func(OptionEvent)

// Session is one connected peer: the Scanner's residue and cursor state,
// the negotiated option state (environment, terminal type, window size,
// raw mode), and the outbound command API bound to a Transport.
//
// A Session is not safe for concurrent Feed calls — per §5 it is driven by
// a single-threaded, cooperative per-connection loop; the caller's
// transport adapter is responsible for serialising reads.
type Session struct {
	transport Transport

	// residue holds bytes carried across Feed calls because the
	// in-progress frame is incomplete (§3 "Frame" / §4.2).
	residue []byte

	env      map[string]string
	terminal string
	columns  int
	rows     int
	isRaw    bool

	convertLF bool
	debug     bool
	isTTY     bool

	mu        sync.Mutex
	listeners map[string][]Listener

	simpleCommandFn func(cmd byte)

	destroyed bool

	Do   negotiator
	Dont negotiator
	Will negotiator
	Wont negotiator
}

// Option configures a new Session.
type Option func(*Session)

// WithConvertLF toggles the \n -> \r\n output rewrite (default true).
func WithConvertLF(enabled bool) Option {
	return func(s *Session) { s.convertLF = enabled }
}

// WithDebug enables parse-trace "debug" events: every decoded frame and
// every user-data span is republished as a KindDebug event.
func WithDebug(enabled bool) Option {
	return func(s *Session) { s.debug = enabled }
}

// WithTTY marks the session as fronting an interactive terminal. On
// construction it proactively sends DO TRANSMIT_BINARY, DO TERMINAL_TYPE,
// DO NAWS and DO NEW_ENVIRON, matching §6's tty configuration flag.
func WithTTY(enabled bool) Option {
	return func(s *Session) { s.isTTY = enabled }
}

// IsTTY reports whether the session was constructed with WithTTY(true).
func (s *Session) IsTTY() bool { return s.isTTY }

// NewSession creates a Session bound to transport. Per the data model
// (§3), terminal defaults to "ansi" and the window size to 80x24 until a
// negotiation overwrites them.
func NewSession(transport Transport, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		env:       make(map[string]string),
		terminal:  "ansi",
		columns:   80,
		rows:      24,
		convertLF: true,
		listeners: make(map[string][]Listener),
	}
	s.Do = negotiator{s: s, cmd: DO}
	s.Dont = negotiator{s: s, cmd: DONT}
	s.Will = negotiator{s: s, cmd: WILL}
	s.Wont = negotiator{s: s, cmd: WONT}
	for _, opt := range opts {
		opt(s)
	}
	if s.isTTY && s.transport.Writable() {
		_ = s.Do.TransmitBinary()
		_ = s.Do.TerminalType()
		_ = s.Do.NAWS()
		_ = s.Do.NewEnviron()
	}
	return s
}

// On registers fn for name (a canonical event name or one of its aliases).
func (s *Session) On(name string, fn Listener) {
	name = canonicalEventName(name)
	s.mu.Lock()
	s.listeners[name] = append(s.listeners[name], fn)
	s.mu.Unlock()
}

// OnSimpleCommand registers fn to be called for every NOP/DM/BRK/IP/AO/
// AYT/EC/EL/GA command the scanner decodes. These carry no option byte, so
// they have no slot in OptionEvent's union beyond the generic "command"
// event (§4.4); this is the typed hook an embedding application uses
// instead of filtering "command" events by hand.
func (s *Session) OnSimpleCommand(fn func(cmd byte)) {
	s.simpleCommandFn = fn
}

func (s *Session) emit(kind Kind, ev OptionEvent) {
	ev.Kind = kind
	name := eventNames[kind]
	s.mu.Lock()
	fns := append([]Listener(nil), s.listeners[name]...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// emitFrame publishes the typed variant for a decoded negotiation/
// subnegotiation frame, then the generic "command" event carrying the same
// command/option metadata (§4.4: "a generic 'command' event carrying the
// full frame metadata").
func (s *Session) emitFrame(kind Kind, ev OptionEvent) {
	s.emit(kind, ev)
	s.emit(KindCommand, ev)
}

// Terminal, Columns, Rows, Env and IsRaw expose the negotiated state. A
// decoded frame's mutation is applied before its event is published, so
// listeners of that event already read the new values here.
func (s *Session) Terminal() string       { return s.terminal }
func (s *Session) Columns() int           { return s.columns }
func (s *Session) Rows() int              { return s.rows }
func (s *Session) IsRaw() bool            { return s.isRaw }
func (s *Session) Env(name string) string { return s.env[name] }

// EnvNames returns the names of every NEW-ENVIRON variable received so
// far, in no particular order.
func (s *Session) EnvNames() []string {
	names := make([]string, 0, len(s.env))
	for k := range s.env {
		names = append(names, k)
	}
	return names
}

// Write forwards p to the transport, rewriting a lone '\n' (one not
// already preceded by '\r') to "\r\n" when convertLF is enabled. Each call
// is rewritten independently of any previous call — a documented rough
// edge carried over from the source (§9).
func (s *Session) Write(p []byte) (int, error) {
	if !s.convertLF {
		return s.transport.Write(p)
	}
	out := make([]byte, 0, len(p)+len(p)/8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r', '\n')
			continue
		}
		out = append(out, b)
	}
	if _, err := s.transport.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// writeRaw bypasses convertLF; used for outbound command/subnegotiation
// bytes, which must never be rewritten.
func (s *Session) writeRaw(p []byte) error {
	_, err := s.transport.Write(p)
	return err
}

// SetRawMode toggles raw mode. Enabling emits WILL ECHO, WILL
// SUPPRESS_GO_AHEAD, DO SUPPRESS_GO_AHEAD in that fixed order (§9 open
// question (b), frozen here); disabling emits the matching WONT/DONT. It
// is a no-op if the transport is not writable.
func (s *Session) SetRawMode(enabled bool) error {
	if !s.transport.Writable() {
		return nil
	}
	if enabled {
		if err := s.Will.Echo(); err != nil {
			return err
		}
		if err := s.Will.SuppressGoAhead(); err != nil {
			return err
		}
		if err := s.Do.SuppressGoAhead(); err != nil {
			return err
		}
	} else {
		if err := s.Wont.Echo(); err != nil {
			return err
		}
		if err := s.Wont.SuppressGoAhead(); err != nil {
			return err
		}
		if err := s.Dont.SuppressGoAhead(); err != nil {
			return err
		}
	}
	s.isRaw = enabled
	return nil
}

func (s *Session) Pause()          { s.transport.Pause() }
func (s *Session) Resume()         { s.transport.Resume() }
func (s *Session) End() error      { return s.transport.End() }
func (s *Session) Destroy() error  { s.destroyed = true; return s.transport.Destroy() }
func (s *Session) Readable() bool  { return s.transport.Readable() }
func (s *Session) Writable() bool  { return s.transport.Writable() }
func (s *Session) Destroyed() bool { return s.destroyed || s.transport.Destroyed() }

// HandleEnd and HandleClose are called by the transport adapter on the
// corresponding lifecycle signal. Per §5, any buffered residue is
// discarded — a partially-received frame never surfaces as a truncated
// event.
func (s *Session) HandleEnd() {
	s.residue = nil
	s.emit(KindEnd, OptionEvent{})
}

func (s *Session) HandleClose() {
	s.residue = nil
	s.emit(KindClose, OptionEvent{})
}

// HandleDrain re-publishes the transport's backpressure-relieved signal.
func (s *Session) HandleDrain() {
	s.emit(KindDrain, OptionEvent{})
}

// HandleError forwards a transport error verbatim (§7 "Transport error").
func (s *Session) HandleError(err error) {
	s.emit(KindError, OptionEvent{Err: err})
}
