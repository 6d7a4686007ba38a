package telnet_test

import "bytes"

// fakeTransport is a minimal in-memory telnet.Transport for tests: it
// records every byte written and tracks pause/resume/end/destroy calls
// without touching a real socket.
type fakeTransport struct {
	out bytes.Buffer

	paused    bool
	ended     bool
	destroyed bool
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	return f.out.Write(p)
}

func (f *fakeTransport) Pause()  { f.paused = true }
func (f *fakeTransport) Resume() { f.paused = false }

func (f *fakeTransport) End() error {
	f.ended = true
	return nil
}

func (f *fakeTransport) Destroy() error {
	f.destroyed = true
	return nil
}

func (f *fakeTransport) Readable() bool  { return !f.ended && !f.destroyed }
func (f *fakeTransport) Writable() bool  { return !f.destroyed }
func (f *fakeTransport) Destroyed() bool { return f.destroyed }
