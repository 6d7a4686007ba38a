package telnet

// RFC 854 command codes. All sixteen occupy the contiguous range 240-255,
// which is what lets the Scanner recognise "b[i+1] is a known command code"
// as a simple range check.
const (
	SE   byte = 240 // Subnegotiation End
	NOP  byte = 241 // No Operation
	DM   byte = 242 // Data Mark
	BRK  byte = 243 // Break
	IP   byte = 244 // Interrupt Process
	AO   byte = 245 // Abort Output
	AYT  byte = 246 // Are You There
	EC   byte = 247 // Erase Character
	EL   byte = 248 // Erase Line
	GA   byte = 249 // Go Ahead
	SB   byte = 250 // Subnegotiation Begin
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255 // Interpret As Command
)

// Subnegotiation marker bytes, scoped per option but reused across them.
const (
	IS      byte = 0 // TERMINAL-TYPE response marker
	SEND    byte = 1 // TERMINAL-TYPE solicitation marker
	VAR     byte = 0 // NEW-ENVIRON VARIABLE marker
	INFO    byte = 2 // NEW-ENVIRON unsolicited-info marker
	VALUE   byte = 1 // NEW-ENVIRON name/value separator
	USERVAR byte = 3 // NEW-ENVIRON USER_VARIABLE marker
)

// Recognised Telnet options (§4.1 of the framing spec). Codes outside this
// set decode to Unknown.
const (
	TransmitBinary      byte = 0  // RFC 854
	Echo                byte = 1  // RFC 857
	SuppressGoAhead     byte = 3  // RFC 858
	Status              byte = 5  // RFC 859
	TimingMark          byte = 6  // RFC 860
	TerminalTypeOption  byte = 24 // RFC 930
	WindowSizeOption    byte = 31 // RFC 1073 (NAWS)
	TerminalSpeed       byte = 32 // RFC 1079
	RemoteFlowControl   byte = 33 // RFC 1372
	Linemode            byte = 34 // RFC 1184
	XDisplayLocation    byte = 35 // RFC 1096
	Authentication      byte = 37 // RFC 2941
	EnvironmentVariable byte = 39 // RFC 1572 (NEW-ENVIRON)

	// Aliases, kept as distinct identifiers because the outbound API and
	// event names expose both spellings (§4.4, §9 "dual-named options").
	NAWS       = WindowSizeOption
	NewEnviron = EnvironmentVariable
)

// commandNames maps command codes to their canonical lowercase name.
var commandNames = map[byte]string{
	SE:   "se",
	NOP:  "nop",
	DM:   "dm",
	BRK:  "brk",
	IP:   "ip",
	AO:   "ao",
	AYT:  "ayt",
	EC:   "ec",
	EL:   "el",
	GA:   "ga",
	SB:   "sb",
	WILL: "will",
	WONT: "wont",
	DO:   "do",
	DONT: "dont",
	IAC:  "iac",
}

// optionNames maps recognised option codes to their canonical dotted name.
var optionNames = map[byte]string{
	TransmitBinary:      "transmit binary",
	Echo:                "echo",
	SuppressGoAhead:     "suppress go ahead",
	Status:              "status",
	TimingMark:          "timing mark",
	TerminalTypeOption:  "terminal type",
	WindowSizeOption:    "window size",
	TerminalSpeed:       "terminal speed",
	RemoteFlowControl:   "remote flow control",
	Linemode:            "linemode",
	XDisplayLocation:    "x display location",
	Authentication:      "authentication",
	EnvironmentVariable: "environment variables",
}

// CommandName returns the canonical lowercase name of a command byte, or
// "" if it is not one of the sixteen recognised commands.
func CommandName(cmd byte) string {
	return commandNames[cmd]
}

// OptionName returns the canonical dotted name of a recognised option code,
// or "" for anything outside the enumerated set in §4.1.
func OptionName(option byte) string {
	return optionNames[option]
}

// isCommandByte reports whether b falls in the 240-255 command range.
func isCommandByte(b byte) bool {
	return b >= SE
}

// isNegotiationCommand reports whether cmd is one of DO/DONT/WILL/WONT,
// i.e. it always carries a following option byte.
func isNegotiationCommand(cmd byte) bool {
	switch cmd {
	case DO, DONT, WILL, WONT:
		return true
	default:
		return false
	}
}
