package modules

import (
	"io"

	"github.com/relaypoint/telnetd/internal/nodes"
)

// Module defines the base interface for pluggable functionality.
type Module interface {
	Name() string
}

// CommandHandler is an optional interface for modules that process user
// commands typed at the demo shell.
type CommandHandler interface {
	Module
	// HandleCommand processes a command, returning true if it was
	// recognised (regardless of whether it produced output).
	HandleCommand(w io.Writer, node *nodes.Node, cmd string, args string) (bool, error)
}

// Registry holds the modules available to the current session.
type Registry struct {
	modules map[string]Module
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

func (r *Registry) Register(m Module) {
	r.modules[m.Name()] = m
}

func (r *Registry) Get(name string) Module {
	return r.modules[name]
}
