package fiscalprinter

import (
	"sync"

	"github.com/google/uuid"
)

// session is the printer session of a single organization. The mutex
// serializes whole operation sequences so concurrent requests cannot
// interleave connect/print/disconnect calls.
type session struct {
	mu     sync.Mutex
	driver Driver
	model  string
	port   string
}

// SessionManager hands out one printer session per organization. Sessions are
// created lazily from the registry and rebuilt when the configured model or
// port changes.
type SessionManager struct {
	registry *Registry

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewSessionManager creates a session manager backed by the given registry.
func NewSessionManager(registry *Registry) *SessionManager {
	return &SessionManager{
		registry: registry,
		sessions: make(map[uuid.UUID]*session),
	}
}

// Exec runs fn against the organization's printer with the session held.
// An unrecognized model yields an unsupported-model result, not an error.
func (m *SessionManager) Exec(organizationID uuid.UUID, model, port string, fn func(Driver) Result) Result {
	sess, err := m.session(organizationID, model, port)
	if err != nil {
		return Unsupported(model)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.driver)
}

func (m *SessionManager) session(organizationID uuid.UUID, model, port string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[organizationID]; ok && sess.model == model && sess.port == port {
		return sess, nil
	}

	driver, err := m.registry.New(model, port)
	if err != nil {
		return nil, err
	}

	// Reconfiguration drops the previous session; the old driver holds no
	// real resources in the simulated implementation.
	sess := &session{driver: driver, model: model, port: port}
	m.sessions[organizationID] = sess
	return sess, nil
}
