package views

import (
	"fmt"
	"io"

	"github.com/relaypoint/telnetd/internal/ansi"
	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/config"
	"github.com/relaypoint/telnetd/internal/modules"
	"github.com/relaypoint/telnetd/internal/nodes"
)

// Manager handles the navigation stack and the currently rendered view —
// the "hosting application" spec.md §1 keeps external to the telnet
// package, reacting to the negotiated terminal type and window size it
// exposes.
type Manager struct {
	config   map[string]config.View
	registry *modules.Registry
	stack    []string
	current  string
}

func NewManager(viewConfig map[string]config.View, registry *modules.Registry, initialView string) *Manager {
	return &Manager{
		config:   viewConfig,
		registry: registry,
		stack:    []string{},
		current:  initialView,
	}
}

func (m *Manager) Current() string {
	return m.current
}

func (m *Manager) Push(viewID string) {
	app.Logger.Debug("view manager: push", "view", viewID, "prev", m.current)
	if m.current != "" {
		m.stack = append(m.stack, m.current)
	}
	m.current = viewID
}

func (m *Manager) Pop() string {
	if len(m.stack) == 0 {
		return ""
	}
	prev := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.current = prev
	return prev
}

// RenderCurrent renders the current view's welcome-banner art, templated
// with the board's general config plus the session's negotiated terminal
// fields (.Custom.Terminal, .Custom.Columns, .Custom.Rows), to w.
func (m *Manager) RenderCurrent(w io.Writer, node *nodes.Node) error {
	viewConfig, ok := m.config[m.current]
	if !ok {
		return fmt.Errorf("view not found: %s", m.current)
	}

	if viewConfig.Ansi != "" {
		isUTF8 := node.Conn == nil || node.Conn.IsUTF8()
		var extra map[string]interface{}
		if node.Conn != nil {
			info := node.Conn.GetTerminalInfo()
			extra = map[string]interface{}{
				"Terminal": info.Type,
				"Columns":  info.Width,
				"Rows":     info.Height,
			}
		}
		if err := ansi.RenderArt(w, viewConfig.Ansi, isUTF8, extra); err != nil {
			return err
		}
	}

	return nil
}

// HandleInput processes input for the current view. Returns true if the
// input was consumed.
func (m *Manager) HandleInput(w io.Writer, input string, node *nodes.Node) (bool, error) {
	viewConfig, ok := m.config[m.current]
	if !ok {
		return false, fmt.Errorf("view not found: %s", m.current)
	}

	if viewConfig.Module != "" {
		if mod := m.registry.Get(viewConfig.Module); mod != nil {
			if cmdHandler, ok := mod.(modules.CommandHandler); ok {
				cmd, args := splitCommand(input)
				handled, err := cmdHandler.HandleCommand(w, node, cmd, args)
				if err != nil {
					return handled, err
				}
				if handled {
					return true, nil
				}
			}
		} else {
			app.Logger.Warn("view manager: module not found", "module", viewConfig.Module)
		}
	}

	if nextView, ok := viewConfig.Actions[input]; ok {
		if nextView == "back" {
			m.Pop()
		} else {
			m.Push(nextView)
		}
		return true, nil
	}

	if viewConfig.Next != nil && viewConfig.Next.Delay == 0 {
		m.Push(viewConfig.Next.View)
		return true, nil
	}

	return false, nil
}

func splitCommand(input string) (cmd, args string) {
	for i, r := range input {
		if r == ' ' {
			return input[:i], input[i+1:]
		}
	}
	return input, ""
}
