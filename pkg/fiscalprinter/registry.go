package fiscalprinter

import (
	"errors"
	"strings"
	"sync"
)

// ErrUnsupportedModel is returned when no registered driver family matches a
// configured printer model.
var ErrUnsupportedModel = errors.New("unsupported printer model")

// Constructor builds a driver for a concrete model/port pair.
type Constructor func(model, port string) Driver

// Registry maps printer model families to driver constructors. Dispatch is by
// case-insensitive family prefix of the configured model string, so new
// hardware families are added without branching logic.
type Registry struct {
	mu       sync.RWMutex
	families map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[string]Constructor)}
}

// Register binds a model family (e.g. "epson") to a driver constructor.
func (r *Registry) Register(family string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.families[strings.ToLower(family)] = ctor
}

// Supports reports whether a model matches a registered family.
func (r *Registry) Supports(model string) bool {
	_, err := r.lookup(model)
	return err == nil
}

// New builds a driver for the model, or ErrUnsupportedModel when no family
// matches.
func (r *Registry) New(model, port string) (Driver, error) {
	ctor, err := r.lookup(model)
	if err != nil {
		return nil, err
	}
	return ctor(model, port), nil
}

func (r *Registry) lookup(model string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := strings.ToLower(strings.TrimSpace(model))
	for family, ctor := range r.families {
		if strings.HasPrefix(normalized, family) {
			return ctor, nil
		}
	}
	return nil, ErrUnsupportedModel
}

// DefaultRegistry returns a registry with the simulated driver bound to the
// supported hardware families. paperWidth sets the rendering width in
// characters; values below 1 fall back to 48 (80mm paper).
func DefaultRegistry(paperWidth int) *Registry {
	reg := NewRegistry()
	simulated := func(model, port string) Driver {
		d := NewSimulatedDriver(model, port)
		d.SetWidth(paperWidth)
		return d
	}
	for _, family := range []string{"epson", "bematech", "daruma"} {
		reg.Register(family, simulated)
	}
	return reg
}
