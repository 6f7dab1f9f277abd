package serialio

import (
	"log/slog"
	"sync"
)

// Manager keeps at most one listener active per application instance.
// Starting a new listener stops the previous one first.
type Manager struct {
	transport Transport
	onFrame   FrameHandler
	logger    *slog.Logger

	mu     sync.Mutex
	active *Listener
}

func NewManager(t Transport, onFrame FrameHandler, logger *slog.Logger) *Manager {
	return &Manager{transport: t, onFrame: onFrame, logger: logger}
}

// Start replaces any active listener with a new one on the given port.
// On open failure no listener remains active and the error is returned.
func (m *Manager) Start(port string, baudrate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Stop()
		m.active = nil
	}
	l := NewListener(m.transport, ListenerConfig{Port: port, Baudrate: baudrate}, m.onFrame, m.logger)
	if err := l.Start(); err != nil {
		return err
	}
	m.active = l
	return nil
}

// Stop stops the active listener, if any. Idempotent.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Stop()
		m.active = nil
	}
}

// Active reports the port of the running listener.
func (m *Manager) Active() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return "", false
	}
	return m.active.cfg.Port, true
}

// ListPorts enumerates the serial devices visible to the transport.
func (m *Manager) ListPorts() ([]string, error) {
	return m.transport.ListPorts()
}
