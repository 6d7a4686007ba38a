// Package telnet implements the server side of the Telnet protocol (RFC 854
// and the option-negotiation RFCs it cites): an incremental byte-stream
// scanner that separates user data from IAC control sequences, decoders for
// a fixed set of option subnegotiations (NAWS, TERMINAL-TYPE, NEW-ENVIRON),
// and a per-connection Session that emits typed events and exposes the
// outbound DO/DONT/WILL/WONT command API.
//
// The package does not open sockets. It consumes chunked bytes handed to it
// by a Transport (see transport.go) and produces user-data bytes, option
// events, and outbound byte buffers; wiring a net.Conn to a Session is the
// caller's job.
package telnet
