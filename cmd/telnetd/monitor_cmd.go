package main

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/nodes"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Attach to the live session registry",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.Boot(cfgFile, true)
	},
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	var username, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if _, err := app.Store.AuthenticateAdmin(username, password); err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}

	p := tea.NewProgram(newMonitorModel())
	_, err := p.Run()
	return err
}

type monitorTickMsg time.Time

type monitorModel struct {
	nodes []*nodes.Node
}

func newMonitorModel() monitorModel {
	return monitorModel{}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(tickMonitor(), func() tea.Msg { return monitorTickMsg(time.Now()) })
}

func tickMonitor() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case monitorTickMsg:
		m.nodes = app.Nodes.Snapshot()
		return m, tickMonitor()
	}
	return m, nil
}

var (
	monitorHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	monitorRowStyle    = lipgloss.NewStyle().PaddingLeft(1)
)

func (m monitorModel) View() string {
	s := monitorHeaderStyle.Render(fmt.Sprintf("relaypoint telnetd %s — %d session(s)", app.Version, len(m.nodes))) + "\n\n"

	if len(m.nodes) == 0 {
		return s + "  no active sessions\n\nPress q to quit.\n"
	}

	for _, n := range m.nodes {
		if n.Conn == nil {
			continue
		}
		info := n.Conn.GetTerminalInfo()
		s += monitorRowStyle.Render(fmt.Sprintf(
			"#%-3d %-22s %-12s %3dx%-3d raw=%v",
			n.ID, n.Conn.RemoteAddr(), info.Type, info.Width, info.Height, info.Raw,
		)) + "\n"
	}

	return s + "\nPress q to quit.\n"
}
