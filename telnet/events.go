package telnet

// Kind discriminates the tagged-union OptionEvent. The source this engine
// is modelled on dispatches by dynamic event name ("window size", "naws",
// ...); Kind plus the canonical/alias name tables in names.go give the same
// dispatch surface without stringly-typed events at the call site.
type Kind int

const (
	// KindData carries a contiguous span of user data.
	KindData Kind = iota
	// KindCommand is published alongside every decoded-frame Kind
	// (KindEcho through KindSimpleCommand); it carries the raw
	// command/option regardless of whether a more specific variant also
	// fired.
	KindCommand
	KindEcho
	KindStatus
	KindTimingMark
	KindLinemode
	KindTransmitBinary
	KindAuthentication
	KindTerminalSpeed
	KindRemoteFlowControl
	KindXDisplayLocation
	KindSuppressGoAhead
	KindWindowSize
	KindTerminalType
	KindEnvironmentVariables
	KindUnknown
	// KindSimpleCommand covers the Telnet commands that carry no option
	// byte at all (NOP, DM, BRK, IP, AO, AYT, EC, EL, GA) — a supplement
	// over the option-only union in the distilled spec (see SPEC_FULL.md).
	KindSimpleCommand
	// KindDebug republishes every frame (including data spans) when the
	// session was constructed with WithDebug(true) — a parse trace, not a
	// substitute for the typed events above.
	KindDebug
	KindError
	KindEnd
	KindClose
	KindDrain
)

// EnvKind distinguishes NEW-ENVIRON VARIABLE from USER_VARIABLE entries.
type EnvKind int

const (
	EnvKindNone EnvKind = iota
	EnvKindSystem
	EnvKindUser
)

func (k EnvKind) String() string {
	switch k {
	case EnvKindSystem:
		return "system"
	case EnvKindUser:
		return "user"
	default:
		return ""
	}
}

// OptionEvent is the single published value for every decode outcome: a
// user-data span, a negotiation command, a subnegotiation, or a transport
// lifecycle signal. Only the fields relevant to Kind are populated; the
// rest are zero.
type OptionEvent struct {
	Kind Kind

	// Command is populated for every decoded frame; Option is populated
	// for every decoded frame except KindSimpleCommand, which carries no
	// option byte.
	Command byte
	Option  byte

	// KindWindowSize, when Command == SB.
	Width, Height   uint16
	HasWindowExtent bool

	// KindTerminalType, when Command == SB.
	Name string

	// KindEnvironmentVariables, when Command == SB.
	Value   string
	EnvKind EnvKind

	// KindUnknown: the raw bytes between the option code and the
	// terminating IAC SE (empty for non-SB unknown frames).
	Bytes []byte

	// KindData.
	Data []byte

	// KindError.
	Err error
}
