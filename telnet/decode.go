package telnet

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// decodeFrame decodes the frame starting at buf[0] == IAC, buf[1] != IAC
// (the IAC-IAC literal-data case is handled directly by the Scanner).
//
// It returns (needMore, _, nil) when buf does not yet hold a complete
// frame, (n, ev, nil) on success with n bytes consumed from buf[0], or
// (0, _, err) when the frame is structurally malformed.
func (s *Session) decodeFrame(buf []byte) (int, OptionEvent, error) {
	cmd := buf[1]

	if isNegotiationCommand(cmd) {
		if len(buf) < 3 {
			return needMore, OptionEvent{}, nil
		}
		return s.decodeNegotiation(cmd, buf[2])
	}

	if cmd == SB {
		if len(buf) < 3 {
			return needMore, OptionEvent{}, nil
		}
		return s.decodeSubnegotiation(buf[2], buf)
	}

	// A simple command (NOP, DM, BRK, IP, AO, AYT, EC, EL, GA) carries no
	// option byte; only the two IAC+cmd bytes are consumed. The Scanner
	// calls this as soon as two bytes are available, and the byte after
	// the command (if any) is left for the next iteration.
	return 2, OptionEvent{Kind: KindSimpleCommand, Command: cmd}, nil
}

// decodeNegotiation handles the fixed 3-byte DO/DONT/WILL/WONT frames for
// every option, recognised or not (§4.3 "Fixed 3-byte decoders").
func (s *Session) decodeNegotiation(cmd, option byte) (int, OptionEvent, error) {
	kind, ok := negotiationKind(option)
	if !ok {
		return 3, OptionEvent{Kind: KindUnknown, Command: cmd, Option: option}, nil
	}
	return 3, OptionEvent{Kind: kind, Command: cmd, Option: option}, nil
}

// negotiationKind maps a recognised option code to the Kind its bare
// negotiation (non-SB) frame publishes.
func negotiationKind(option byte) (Kind, bool) {
	switch option {
	case TransmitBinary:
		return KindTransmitBinary, true
	case Echo:
		return KindEcho, true
	case SuppressGoAhead:
		return KindSuppressGoAhead, true
	case Status:
		return KindStatus, true
	case TimingMark:
		return KindTimingMark, true
	case TerminalSpeed:
		return KindTerminalSpeed, true
	case RemoteFlowControl:
		return KindRemoteFlowControl, true
	case Linemode:
		return KindLinemode, true
	case XDisplayLocation:
		return KindXDisplayLocation, true
	case Authentication:
		return KindAuthentication, true
	case TerminalTypeOption:
		return KindTerminalType, true
	case WindowSizeOption:
		return KindWindowSize, true
	case EnvironmentVariable:
		return KindEnvironmentVariables, true
	default:
		return Kind(-1), false
	}
}

// decodeSubnegotiation dispatches IAC SB <option> ... IAC SE frames to the
// option-specific decoder, or to the generic unknown-SB scanner.
func (s *Session) decodeSubnegotiation(option byte, buf []byte) (int, OptionEvent, error) {
	switch option {
	case WindowSizeOption:
		return decodeNAWS(buf)
	case TerminalTypeOption:
		return decodeTerminalType(buf)
	case EnvironmentVariable:
		return decodeNewEnviron(buf)
	default:
		return decodeUnknownSubnegotiation(option, buf)
	}
}

// indexIACSE returns the offset of the first "IAC SE" pair within buf, or
// -1 if absent. §9 flags the source's bare-0xF0 scan as a false-match
// hazard and recommends the two-byte sequence instead; this is that fix.
func indexIACSE(buf []byte) int {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == IAC && buf[i+1] == SE {
			return i
		}
	}
	return -1
}

// decodeNAWS decodes IAC SB 31 w_hi w_lo h_hi h_lo IAC SE (RFC 1073).
func decodeNAWS(buf []byte) (int, OptionEvent, error) {
	const frameLen = 9
	if len(buf) < frameLen {
		return needMore, OptionEvent{}, nil
	}
	if buf[7] != IAC || buf[8] != SE {
		return 0, OptionEvent{}, fmt.Errorf("%w: naws frame missing trailing IAC SE", ErrMalformedSubnegotiation)
	}
	width := binary.BigEndian.Uint16(buf[3:5])
	height := binary.BigEndian.Uint16(buf[5:7])
	return frameLen, OptionEvent{
		Kind: KindWindowSize, Command: SB, Option: WindowSizeOption,
		Width: width, Height: height, HasWindowExtent: true,
	}, nil
}

// decodeTerminalType decodes IAC SB 24 IS <name...> IAC SE (RFC 930/1091).
func decodeTerminalType(buf []byte) (int, OptionEvent, error) {
	// buf[0..2] = IAC SB 24; need buf[3] (IS) before we can look further.
	if len(buf) < 4 {
		return needMore, OptionEvent{}, nil
	}
	if buf[3] != IS {
		return 0, OptionEvent{}, fmt.Errorf("%w: terminal type subnegotiation missing IS marker", ErrMalformedSubnegotiation)
	}
	rest := buf[4:]
	idx := indexIACSE(rest)
	if idx == -1 {
		return needMore, OptionEvent{}, nil
	}
	if idx == 0 {
		return 0, OptionEvent{}, fmt.Errorf("%w: terminal type name is empty", ErrMalformedSubnegotiation)
	}
	name := strings.ToLower(string(rest[:idx]))
	consumed := 4 + idx + 2
	return consumed, OptionEvent{
		Kind: KindTerminalType, Command: SB, Option: TerminalTypeOption, Name: name,
	}, nil
}

// decodeNewEnviron decodes
// IAC SB 39 INFO <kind> <name...> VALUE <value...> IAC SE (RFC 1572).
func decodeNewEnviron(buf []byte) (int, OptionEvent, error) {
	// buf[0..2] = IAC SB 39; need through the kind byte (buf[4]).
	if len(buf) < 5 {
		return needMore, OptionEvent{}, nil
	}
	if buf[3] != INFO {
		return 0, OptionEvent{}, fmt.Errorf("%w: new-environ subnegotiation missing INFO marker", ErrMalformedSubnegotiation)
	}
	var envKind EnvKind
	switch buf[4] {
	case VAR:
		envKind = EnvKindSystem
	case USERVAR:
		envKind = EnvKindUser
	default:
		return 0, OptionEvent{}, fmt.Errorf("%w: new-environ subnegotiation has unknown kind marker %d", ErrMalformedSubnegotiation, buf[4])
	}

	nameAndRest := buf[5:]
	sep := indexByte(nameAndRest, VALUE)
	if sep == -1 {
		return needMore, OptionEvent{}, nil
	}
	if sep == 0 {
		return 0, OptionEvent{}, fmt.Errorf("%w: new-environ variable name is empty", ErrMalformedSubnegotiation)
	}
	name := string(nameAndRest[:sep])

	valueAndRest := nameAndRest[sep+1:]
	idx := indexIACSE(valueAndRest)
	if idx == -1 {
		return needMore, OptionEvent{}, nil
	}
	if idx == 0 {
		return 0, OptionEvent{}, fmt.Errorf("%w: new-environ variable value is empty", ErrMalformedSubnegotiation)
	}
	value := string(valueAndRest[:idx])
	if name == "TERM" {
		value = strings.ToLower(value)
	}

	consumed := 5 + sep + 1 + idx + 2
	return consumed, OptionEvent{
		Kind: KindEnvironmentVariables, Command: SB, Option: EnvironmentVariable,
		Name: name, Value: value, EnvKind: envKind,
	}, nil
}

// decodeUnknownSubnegotiation waits for "IAC SE" and hands back everything
// between the option byte and the terminator as opaque bytes, tolerating
// any option code not in the recognised set (§4.3 "Unknown option").
func decodeUnknownSubnegotiation(option byte, buf []byte) (int, OptionEvent, error) {
	rest := buf[3:]
	idx := indexIACSE(rest)
	if idx == -1 {
		return needMore, OptionEvent{}, nil
	}
	payload := make([]byte, idx)
	copy(payload, rest[:idx])
	consumed := 3 + idx + 2
	return consumed, OptionEvent{
		Kind: KindUnknown, Command: SB, Option: option, Bytes: payload,
	}, nil
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}
