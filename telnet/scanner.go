package telnet

// Feed hands a newly arrived chunk to the Session. It concatenates chunk
// onto any residue left over from a suspended frame, then walks forward
// emitting user-data spans and option events in wire order (§4.2).
//
// An empty chunk is a no-op (§4.2 "Empty reads").
func (s *Session) Feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	buf := append(s.residue, chunk...)
	s.residue = nil
	s.scan(buf)
}

// scan implements the Idle/WaitingForFrame state machine of §4.2. dataStart
// marks the beginning of the user-data span not yet emitted; i is the
// scan cursor. On suspend, buf[i:] becomes the new residue — trimmed to
// start at the frame boundary per the §3 invariant.
func (s *Session) scan(buf []byte) {
	dataStart := 0
	i := 0
	for i < len(buf) {
		if buf[i] != IAC {
			i++
			continue
		}

		// Flush the user-data span preceding this IAC before deciding
		// what the IAC introduces (§4.2 "pre-frame span is emitted
		// before the frame event").
		if i > dataStart {
			s.emitData(buf[dataStart:i])
		}

		if i+1 >= len(buf) {
			s.suspend(buf, i)
			return
		}

		if buf[i+1] == IAC {
			// IAC IAC -> one literal 0xFF data byte, collapsed at the
			// scanner level per §4.2.
			s.emitData([]byte{0xFF})
			i += 2
			dataStart = i
			continue
		}

		if !isCommandByte(buf[i+1]) {
			// Not a frame head: the IAC and what follows it are user data.
			dataStart = i
			i++
			continue
		}

		consumed, ev, err := s.decodeFrame(buf[i:])
		if consumed == needMore {
			s.suspend(buf, i)
			return
		}
		if err != nil {
			// §7: structural mismatch aborts this parse pass without
			// closing the transport. The remainder of buf is not
			// reliably resynchronisable, so it is dropped; the next
			// Feed call starts clean.
			s.emit(KindError, OptionEvent{Err: err})
			s.residue = nil
			return
		}

		s.dispatch(ev)
		i += consumed
		dataStart = i
	}

	if dataStart < len(buf) {
		s.emitData(buf[dataStart:])
	}
}

// suspend records buf[i:] as the new residue and returns to the caller;
// per §4.2 this is "not an error" (§7 "Underflow").
func (s *Session) suspend(buf []byte, i int) {
	residue := make([]byte, len(buf)-i)
	copy(residue, buf[i:])
	s.residue = residue
}

const needMore = -1

func (s *Session) emitData(data []byte) {
	if len(data) == 0 {
		return
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	ev := OptionEvent{Data: cp}
	s.emit(KindData, ev)
	if s.debug {
		s.emit(KindDebug, ev)
	}
}

// dispatch applies a successfully decoded frame's side effects (state
// mutation, proactive replies) and publishes its events. State mutation
// happens here, before the event is published, so listeners of that event
// already see the new values through the Session's getters.
func (s *Session) dispatch(ev OptionEvent) {
	switch ev.Kind {
	case KindWindowSize:
		if ev.HasWindowExtent {
			s.columns = int(ev.Width)
			s.rows = int(ev.Height)
		}
		s.emitFrame(KindWindowSize, ev)
	case KindTerminalType:
		if ev.Name != "" {
			s.terminal = ev.Name
		}
		s.emitFrame(KindTerminalType, ev)
		if ev.Command == WILL {
			_ = s.sendTerminalTypeRequest()
		}
	case KindEnvironmentVariables:
		if ev.Name != "" {
			s.env[ev.Name] = ev.Value
			if ev.Name == "TERM" {
				s.terminal = ev.Value
			}
		}
		s.emitFrame(KindEnvironmentVariables, ev)
	case KindSimpleCommand:
		s.emitFrame(KindSimpleCommand, ev)
		if s.simpleCommandFn != nil {
			s.simpleCommandFn(ev.Command)
		}
	case KindUnknown:
		s.emitFrame(KindUnknown, ev)
	default:
		s.emitFrame(ev.Kind, ev)
	}
	if s.debug {
		s.emit(KindDebug, ev)
	}
}
