package telnet

// eventNames maps each Kind to its canonical event name, matching the
// option's dotted name from OptionName where one exists.
var eventNames = map[Kind]string{
	KindData:                 "data",
	KindCommand:              "command",
	KindEcho:                 "echo",
	KindStatus:               "status",
	KindTimingMark:           "timing mark",
	KindLinemode:             "linemode",
	KindTransmitBinary:       "transmit binary",
	KindAuthentication:       "authentication",
	KindTerminalSpeed:        "terminal speed",
	KindRemoteFlowControl:    "remote flow control",
	KindXDisplayLocation:     "x display location",
	KindSuppressGoAhead:      "suppress go ahead",
	KindWindowSize:           "window size",
	KindTerminalType:         "terminal type",
	KindEnvironmentVariables: "environment variables",
	KindUnknown:              "unknown",
	KindSimpleCommand:        "simple command",
	KindDebug:                "debug",
	KindError:                "error",
	KindEnd:                  "end",
	KindClose:                "close",
	KindDrain:                "drain",
}

// aliasNames maps the short aliases called out in §4.4 and §9 ("dual-named
// options") to their canonical event name.
var aliasNames = map[string]string{
	"naws":        "window size",
	"size":        "window size",
	"new environ": "environment variables",
	"env":         "environment variables",
	"term":        "terminal type",
}

// canonicalEventName resolves an alias to its canonical event name; names
// that are already canonical (or unknown) pass through unchanged.
func canonicalEventName(name string) string {
	if canon, ok := aliasNames[name]; ok {
		return canon
	}
	return name
}
