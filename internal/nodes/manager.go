package nodes

import (
	"fmt"
	"sync"

	"github.com/relaypoint/telnetd/internal/store"
)

// Manager is the session registry: a fixed-size slot table the monitor
// TUI and the welcome-banner views can inspect, backed by a SessionRecord
// row per slot so acquire/release survives the Node itself being
// released.
type Manager struct {
	mu          sync.RWMutex
	maxSessions int
	nodes       []*Node
	store       *store.Store
}

func NewManager(maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = 10
	}
	return &Manager{
		maxSessions: maxSessions,
		nodes:       make([]*Node, maxSessions),
	}
}

// WithStore attaches a Store so Acquire/Release persist SessionRecord
// rows. Nil is a valid value (no persistence, used by tests).
func (m *Manager) WithStore(s *store.Store) *Manager {
	m.store = s
	return m
}

func (m *Manager) Acquire(remoteAddr string) (*Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, n := range m.nodes {
		if n != nil {
			continue
		}
		node := &Node{ID: i + 1}
		if m.store != nil {
			if rec, err := m.store.OpenSessionRecord(remoteAddr); err == nil {
				node.RecordID = rec.ID
			}
		}
		m.nodes[i] = node
		return node, nil
	}
	return nil, fmt.Errorf("session table full")
}

func (m *Manager) Release(id int) {
	m.mu.Lock()
	node := m.get(id)
	if node != nil {
		m.nodes[id-1] = nil
	}
	m.mu.Unlock()

	if node == nil || m.store == nil || node.RecordID == 0 {
		return
	}
	if err := m.store.CloseSessionRecordByID(node.RecordID); err != nil {
		_ = err // best-effort telemetry, never blocks teardown
	}
}

func (m *Manager) Get(id int) *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(id)
}

func (m *Manager) get(id int) *Node {
	if id < 1 || id > m.maxSessions {
		return nil
	}
	return m.nodes[id-1]
}

// SetTerminalInfo records the negotiated terminal state for id, persisting
// it to the backing SessionRecord when one is attached. Called once the
// transport adapter observes a WindowSize or TerminalType event settle.
func (m *Manager) SetTerminalInfo(id int, info TerminalInfo) {
	m.mu.RLock()
	node := m.get(id)
	m.mu.RUnlock()
	if node == nil {
		return
	}
	if m.store != nil && node.RecordID != 0 {
		_ = m.store.UpdateSessionRecordState(node.RecordID, info.Type, info.Width, info.Height)
	}
}

// Snapshot returns every currently occupied slot, ordered by ID, for the
// monitor TUI to render.
func (m *Manager) Snapshot() []*Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Node
	for _, n := range m.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m *Manager) Broadcast(msg string) {
	m.BroadcastExcept(msg, -1)
}

func (m *Manager) BroadcastExcept(msg string, exceptID int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, n := range m.nodes {
		if n != nil && n.Conn != nil && n.ID != exceptID {
			_ = n.Conn.Send(msg)
		}
	}
}
