package modules

import (
	"fmt"
	"io"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/nodes"
	"github.com/relaypoint/telnetd/telnet"
)

// DebugModule exposes the negotiated state of one telnet.Session as a set
// of shell commands for the connected peer — the per-session counterpart
// to the operator's monitor TUI.
type DebugModule struct {
	sess *telnet.Session
}

func NewDebugModule(sess *telnet.Session) *DebugModule {
	return &DebugModule{sess: sess}
}

func (m *DebugModule) Name() string {
	return "debug"
}

func (m *DebugModule) HandleCommand(w io.Writer, node *nodes.Node, cmd string, args string) (bool, error) {
	switch cmd {
	case "help":
		io.WriteString(w, "Commands: help, info, naws, env, raw on|off, yell <msg>, box, tui\r\n")
		return true, nil

	case "info":
		fmt.Fprintf(w, "Terminal: %s (%dx%d) raw=%v\r\n",
			m.sess.Terminal(), m.sess.Columns(), m.sess.Rows(), m.sess.IsRaw())
		return true, nil

	case "naws":
		fmt.Fprintf(w, "Window size: %dx%d\r\n", m.sess.Columns(), m.sess.Rows())
		return true, nil

	case "env":
		names := m.sess.EnvNames()
		if len(names) == 0 {
			io.WriteString(w, "No NEW-ENVIRON variables received.\r\n")
			return true, nil
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s=%s\r\n", name, m.sess.Env(name))
		}
		return true, nil

	case "raw":
		switch args {
		case "on":
			if err := m.sess.SetRawMode(true); err != nil {
				return true, err
			}
			io.WriteString(w, "Raw mode enabled.\r\n")
		case "off":
			if err := m.sess.SetRawMode(false); err != nil {
				return true, err
			}
			io.WriteString(w, "Raw mode disabled.\r\n")
		default:
			io.WriteString(w, "Usage: raw on|off\r\n")
		}
		return true, nil

	case "yell":
		if args == "" {
			io.WriteString(w, "Usage: yell <message>\r\n")
			return true, nil
		}
		msg := fmt.Sprintf("\r\n[session %d yells]: %s\r\n", node.ID, args)
		app.Nodes.BroadcastExcept(msg, node.ID)
		io.WriteString(w, "You yelled to everyone.\r\n")
		return true, nil

	case "box":
		asciiBorder := lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
		border := asciiBorder
		if node.Conn != nil && node.Conn.IsUTF8() {
			border = lipgloss.RoundedBorder()
		}
		style := lipgloss.NewStyle().
			BorderStyle(border).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Render(fmt.Sprintf("%s (%dx%d)", m.sess.Terminal(), m.sess.Columns(), m.sess.Rows()))
		io.WriteString(w, "\r\n"+style+"\r\n")
		return true, nil

	case "tui":
		if rw, ok := w.(io.ReadWriter); ok {
			p := tea.NewProgram(newNawsModel(m.sess), tea.WithInput(rw), tea.WithOutput(rw))
			if _, err := p.Run(); err != nil {
				fmt.Fprintf(w, "Error running TUI: %v\r\n", err)
			}
		} else {
			io.WriteString(w, "Error: IO does not support reading for TUI\r\n")
		}
		return true, nil
	}
	return false, nil
}

// nawsModel is a tiny Bubble Tea program that shows the negotiated
// terminal, window size and raw-mode flag, re-read from the Session each
// time the view is redrawn after a message (such as a key press); it
// replaces the shopping-list placeholder this command was demonstrated
// with originally.
type nawsModel struct {
	sess *telnet.Session
}

func newNawsModel(sess *telnet.Session) nawsModel {
	return nawsModel{sess: sess}
}

func (m nawsModel) Init() tea.Cmd {
	return nil
}

func (m nawsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m nawsModel) View() string {
	return fmt.Sprintf(
		"terminal: %s\r\nwindow:   %dx%d\r\nraw mode: %v\r\n\r\nPress q to quit.\r\n",
		m.sess.Terminal(), m.sess.Columns(), m.sess.Rows(), m.sess.IsRaw(),
	)
}
