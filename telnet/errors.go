package telnet

import "errors"

// ErrMalformedSubnegotiation is wrapped into the error carried by a
// KindError event when a recognised option's subnegotiation does not match
// its fixed sub-grammar (missing terminator, empty name/value, bad marker
// byte). Per §7 this aborts the current parse pass; it never closes the
// transport.
var ErrMalformedSubnegotiation = errors.New("telnet: malformed subnegotiation")
