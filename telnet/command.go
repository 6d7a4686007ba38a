package telnet

// negotiator sends IAC <cmd> <option> for a fixed command (DO/DONT/WILL/
// WONT), one method per recognised option plus the two alias pairs
// (window_size/naws, environment_variables/new_environ) that §4.4
// requires. Session.Do, Session.Dont, Session.Will and Session.Wont are
// each one of these, bound to their respective command byte.
type negotiator struct {
	s   *Session
	cmd byte
}

// Send emits IAC <cmd> <option> for an arbitrary option code, including
// ones outside the recognised set — the low-level escape hatch behind
// every named method below.
func (n negotiator) Send(option byte) error {
	return n.s.writeRaw([]byte{IAC, n.cmd, option})
}

func (n negotiator) TransmitBinary() error    { return n.Send(TransmitBinary) }
func (n negotiator) Echo() error              { return n.Send(Echo) }
func (n negotiator) SuppressGoAhead() error   { return n.Send(SuppressGoAhead) }
func (n negotiator) Status() error            { return n.Send(Status) }
func (n negotiator) TimingMark() error        { return n.Send(TimingMark) }
func (n negotiator) TerminalType() error      { return n.Send(TerminalTypeOption) }
func (n negotiator) TerminalSpeed() error     { return n.Send(TerminalSpeed) }
func (n negotiator) RemoteFlowControl() error { return n.Send(RemoteFlowControl) }
func (n negotiator) Linemode() error          { return n.Send(Linemode) }
func (n negotiator) XDisplayLocation() error  { return n.Send(XDisplayLocation) }
func (n negotiator) Authentication() error    { return n.Send(Authentication) }

// WindowSize and its alias NAWS both send IAC <cmd> 31.
func (n negotiator) WindowSize() error { return n.Send(WindowSizeOption) }
func (n negotiator) NAWS() error       { return n.WindowSize() }

// EnvironmentVariables and its alias NewEnviron both send IAC <cmd> 39.
func (n negotiator) EnvironmentVariables() error { return n.Send(EnvironmentVariable) }
func (n negotiator) NewEnviron() error           { return n.EnvironmentVariables() }

// SendSubnegotiation writes IAC SB <option> <data...> IAC SE, escaping any
// literal IAC byte within data as IAC IAC so it cannot be mistaken for the
// terminator by a peer's scanner.
func (s *Session) SendSubnegotiation(option byte, data []byte) error {
	buf := make([]byte, 0, len(data)+5)
	buf = append(buf, IAC, SB, option)
	for _, b := range data {
		buf = append(buf, b)
		if b == IAC {
			buf = append(buf, IAC)
		}
	}
	buf = append(buf, IAC, SE)
	return s.writeRaw(buf)
}

// sendTerminalTypeRequest writes IAC SB TERMINAL-TYPE SEND IAC SE, the
// proactive solicitation the Session issues when a peer announces WILL
// TERMINAL-TYPE (§4.3).
func (s *Session) sendTerminalTypeRequest() error {
	return s.SendSubnegotiation(TerminalTypeOption, []byte{SEND})
}
