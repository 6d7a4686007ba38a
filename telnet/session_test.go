package telnet_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaypoint/telnetd/telnet"
)

// recorder accumulates every event published on a given name, in order.
type recorder struct {
	events []telnet.OptionEvent
}

func (r *recorder) listen(s *telnet.Session, names ...string) {
	for _, name := range names {
		r.listen1(s, name)
	}
}

func (r *recorder) listen1(s *telnet.Session, name string) {
	s.On(name, func(ev telnet.OptionEvent) {
		r.events = append(r.events, ev)
	})
}

var _ = Describe("Session", func() {
	var (
		tr *fakeTransport
		s  *telnet.Session
	)

	BeforeEach(func() {
		tr = &fakeTransport{}
		s = telnet.NewSession(tr)
	})

	Describe("S1: NAWS announce", func() {
		It("publishes a bare window size event with no extent", func() {
			rec := &recorder{}
			rec.listen(s, "naws")

			s.Feed([]byte{telnet.IAC, telnet.WILL, telnet.NAWS})

			Expect(rec.events).To(HaveLen(1))
			Expect(rec.events[0].Command).To(Equal(telnet.WILL))
			Expect(rec.events[0].HasWindowExtent).To(BeFalse())
			Expect(s.Columns()).To(Equal(80))
			Expect(s.Rows()).To(Equal(24))
		})
	})

	Describe("S2: NAWS resize", func() {
		It("updates Columns/Rows and publishes the extent", func() {
			rec := &recorder{}
			rec.listen(s, "window size")

			s.Feed([]byte{
				telnet.IAC, telnet.SB, telnet.NAWS,
				0x00, 0x50, 0x00, 0x18,
				telnet.IAC, telnet.SE,
			})

			Expect(rec.events).To(HaveLen(1))
			Expect(rec.events[0].Width).To(Equal(uint16(80)))
			Expect(rec.events[0].Height).To(Equal(uint16(24)))
			Expect(s.Columns()).To(Equal(80))
			Expect(s.Rows()).To(Equal(24))
		})
	})

	Describe("S3: terminal type round trip", func() {
		It("solicits the name on WILL and stores it lowercased", func() {
			rec := &recorder{}
			rec.listen(s, "terminal type")

			s.Feed([]byte{telnet.IAC, telnet.WILL, telnet.TerminalTypeOption})
			Expect(tr.out.Bytes()).To(Equal([]byte{
				telnet.IAC, telnet.SB, telnet.TerminalTypeOption, telnet.SEND,
				telnet.IAC, telnet.SE,
			}))

			s.Feed([]byte{
				telnet.IAC, telnet.SB, telnet.TerminalTypeOption, telnet.IS,
				'X', 'T', 'E', 'R', 'M',
				telnet.IAC, telnet.SE,
			})

			Expect(rec.events).To(HaveLen(2))
			Expect(rec.events[1].Name).To(Equal("xterm"))
			Expect(s.Terminal()).To(Equal("xterm"))
		})
	})

	Describe("S4: chunk splitting", func() {
		It("reassembles a frame split mid-IAC across two Feed calls", func() {
			var data [][]byte
			var commands []telnet.OptionEvent
			s.On("data", func(ev telnet.OptionEvent) { data = append(data, ev.Data) })
			s.On("echo", func(ev telnet.OptionEvent) { commands = append(commands, ev) })

			s.Feed([]byte("HI\xff"))
			s.Feed([]byte{telnet.WILL, telnet.Echo, ' ', 'W', 'O', 'R', 'L', 'D'})

			Expect(data).To(HaveLen(2))
			Expect(string(data[0])).To(Equal("HI"))
			Expect(string(data[1])).To(Equal(" WORLD"))
			Expect(commands).To(HaveLen(1))
			Expect(commands[0].Command).To(Equal(telnet.WILL))
		})
	})

	Describe("S5: interleaved data and unknown option", func() {
		It("emits data, Unknown, data in wire order", func() {
			var kinds []telnet.Kind
			var payloads []string
			s.On("data", func(ev telnet.OptionEvent) {
				kinds = append(kinds, ev.Kind)
				payloads = append(payloads, string(ev.Data))
			})
			s.On("unknown", func(ev telnet.OptionEvent) {
				kinds = append(kinds, ev.Kind)
				payloads = append(payloads, "")
				Expect(ev.Command).To(Equal(telnet.WILL))
				Expect(ev.Option).To(Equal(byte(42)))
			})

			s.Feed([]byte{'A', telnet.IAC, telnet.WILL, 42, 'B'})

			Expect(kinds).To(Equal([]telnet.Kind{telnet.KindData, telnet.KindUnknown, telnet.KindData}))
			Expect(payloads[0]).To(Equal("A"))
			Expect(payloads[2]).To(Equal("B"))
		})
	})

	Describe("MSSP/GMCP-shaped unknown subnegotiation with an embedded bare SE byte", func() {
		It("scans for the two-byte IAC SE terminator rather than a bare 0xF0", func() {
			rec := &recorder{}
			rec.listen(s, "unknown")

			// IAC SB 70 (MSSP) <payload containing a bare SE byte> IAC SE.
			// A single-byte 0xF0 scan would terminate the frame early, at
			// the payload's own 0xF0, and misparse everything after it.
			s.Feed([]byte{
				telnet.IAC, telnet.SB, 70,
				0xAB, 0xF0, 0xCD,
				telnet.IAC, telnet.SE,
			})

			Expect(rec.events).To(HaveLen(1))
			Expect(rec.events[0].Option).To(Equal(byte(70)))
			Expect(rec.events[0].Bytes).To(Equal([]byte{0xAB, 0xF0, 0xCD}))
		})

		It("does the same for GMCP(201)", func() {
			rec := &recorder{}
			rec.listen(s, "unknown")

			s.Feed([]byte{
				telnet.IAC, telnet.SB, 201,
				0xF0, 0xF0,
				telnet.IAC, telnet.SE,
			})

			Expect(rec.events).To(HaveLen(1))
			Expect(rec.events[0].Option).To(Equal(byte(201)))
			Expect(rec.events[0].Bytes).To(Equal([]byte{0xF0, 0xF0}))
		})
	})

	Describe("simple commands", func() {
		It("publishes KindSimpleCommand and the generic command event, and invokes OnSimpleCommand", func() {
			var viaListener []byte
			var viaGeneric []byte
			var viaCallback []byte
			s.On("simple command", func(ev telnet.OptionEvent) {
				viaListener = append(viaListener, ev.Command)
			})
			s.On("command", func(ev telnet.OptionEvent) {
				viaGeneric = append(viaGeneric, ev.Command)
			})
			s.OnSimpleCommand(func(cmd byte) {
				viaCallback = append(viaCallback, cmd)
			})

			s.Feed([]byte{telnet.IAC, telnet.AYT})

			Expect(viaListener).To(Equal([]byte{telnet.AYT}))
			Expect(viaGeneric).To(Equal([]byte{telnet.AYT}))
			Expect(viaCallback).To(Equal([]byte{telnet.AYT}))
		})
	})

	Describe("S6: raw mode toggle", func() {
		It("emits WILL ECHO, WILL SGA, DO SGA in that fixed order", func() {
			Expect(s.SetRawMode(true)).To(Succeed())
			Expect(tr.out.Bytes()).To(Equal([]byte{
				telnet.IAC, telnet.WILL, telnet.Echo,
				telnet.IAC, telnet.WILL, telnet.SuppressGoAhead,
				telnet.IAC, telnet.DO, telnet.SuppressGoAhead,
			}))
			Expect(s.IsRaw()).To(BeTrue())
		})
	})

	Describe("idempotent command emission", func() {
		It("writes the same three bytes twice on two calls", func() {
			Expect(s.Do.Echo()).To(Succeed())
			Expect(s.Do.Echo()).To(Succeed())
			Expect(tr.out.Bytes()).To(Equal([]byte{
				telnet.IAC, telnet.DO, telnet.Echo,
				telnet.IAC, telnet.DO, telnet.Echo,
			}))
		})
	})

	Describe("NEW-ENVIRON", func() {
		It("decodes a system variable and mirrors TERM", func() {
			var ev telnet.OptionEvent
			s.On("env", func(e telnet.OptionEvent) { ev = e })

			s.Feed([]byte{
				telnet.IAC, telnet.SB, telnet.NewEnviron, telnet.INFO, telnet.VAR,
				'T', 'E', 'R', 'M', telnet.VALUE,
				'X', 'T', 'E', 'R', 'M',
				telnet.IAC, telnet.SE,
			})

			Expect(ev.Name).To(Equal("TERM"))
			Expect(ev.Value).To(Equal("xterm"))
			Expect(ev.EnvKind).To(Equal(telnet.EnvKindSystem))
			Expect(s.Env("TERM")).To(Equal("xterm"))
			Expect(s.Terminal()).To(Equal("xterm"))
		})

		It("decodes a user variable without touching Terminal", func() {
			s.Feed([]byte{
				telnet.IAC, telnet.SB, telnet.NewEnviron, telnet.INFO, telnet.USERVAR,
				'S', 'H', 'E', 'L', 'L', telnet.VALUE,
				'/', 'b', 'i', 'n', '/', 's', 'h',
				telnet.IAC, telnet.SE,
			})

			Expect(s.Env("SHELL")).To(Equal("/bin/sh"))
			Expect(s.Terminal()).To(Equal("ansi"))
		})
	})

	Describe("malformed subnegotiation", func() {
		It("publishes an error event and does not close the transport", func() {
			var gotErr error
			s.On("error", func(ev telnet.OptionEvent) { gotErr = ev.Err })

			s.Feed([]byte{
				telnet.IAC, telnet.SB, telnet.NAWS,
				0x00, 0x50, 0x00, 0x18,
				'X', 'X', // not IAC SE
			})

			Expect(gotErr).To(HaveOccurred())
			Expect(tr.destroyed).To(BeFalse())
		})
	})

	Describe("IAC escape round trip", func() {
		It("collapses IAC IAC into a single 0xFF data byte", func() {
			var out []byte
			s.On("data", func(ev telnet.OptionEvent) { out = append(out, ev.Data...) })

			s.Feed([]byte{'a', telnet.IAC, telnet.IAC, 'b'})

			Expect(out).To(Equal([]byte{'a', 0xFF, 'b'}))
		})
	})

	Describe("chunking invariance", func() {
		It("produces identical events regardless of how the stream is split", func() {
			whole := []byte{
				'p', 'r', 'e',
				telnet.IAC, telnet.WILL, telnet.Echo,
				'm', 'i', 'd',
				telnet.IAC, telnet.SB, telnet.NAWS, 0, 80, 0, 24, telnet.IAC, telnet.SE,
				'p', 'o', 's', 't',
			}

			collect := func(splits []int) []string {
				tr := &fakeTransport{}
				s := telnet.NewSession(tr)
				var seen []string
				// A data event covers the user data of one Feed call, so
				// adjacent data events are joined: the property is that the
				// user-data bytes and the frame events come out the same.
				s.On("data", func(ev telnet.OptionEvent) {
					if n := len(seen); n > 0 && strings.HasPrefix(seen[n-1], "data:") {
						seen[n-1] += string(ev.Data)
						return
					}
					seen = append(seen, "data:"+string(ev.Data))
				})
				s.On("command", func(ev telnet.OptionEvent) { seen = append(seen, "command") })

				start := 0
				for _, end := range splits {
					s.Feed(whole[start:end])
					start = end
				}
				s.Feed(whole[start:])
				return seen
			}

			full := collect(nil)
			bytewise := collect(allOffsets(len(whole)))
			Expect(bytewise).To(Equal(full))
		})
	})
})

func allOffsets(n int) []int {
	offsets := make([]int, 0, n)
	for i := 1; i < n; i++ {
		offsets = append(offsets, i)
	}
	return offsets
}
