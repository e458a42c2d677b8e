package fiscalprinter

import (
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerExecUnsupportedModel(t *testing.T) {
	m := NewSessionManager(DefaultRegistry(48))

	res := m.Exec(uuid.New(), "elgin i9", "USB001", func(d Driver) Result {
		t.Fatal("fn must not run for unsupported models")
		return Result{}
	})

	assert.False(t, res.Success)
	assert.Equal(t, CodeUnsupportedModel, res.Code)
}

func TestSessionManagerReusesSession(t *testing.T) {
	m := NewSessionManager(DefaultRegistry(48))
	orgID := uuid.New()

	first := m.Exec(orgID, "epson TM-T20", "USB001", func(d Driver) Result {
		return d.Connect()
	})
	require.True(t, first.Success)

	// Same model/port: the established session (and its serial) survives
	second := m.Exec(orgID, "epson TM-T20", "USB001", func(d Driver) Result {
		return d.Connect()
	})
	assert.Equal(t, first.Data["serial_number"], second.Data["serial_number"])
}

func TestSessionManagerRebuildsOnReconfiguration(t *testing.T) {
	m := NewSessionManager(DefaultRegistry(48))
	orgID := uuid.New()

	first := m.Exec(orgID, "epson TM-T20", "USB001", func(d Driver) Result {
		return d.Connect()
	})
	require.True(t, first.Success)

	second := m.Exec(orgID, "epson TM-T20", "COM3", func(d Driver) Result {
		return d.Connect()
	})
	require.True(t, second.Success)
	assert.NotEqual(t, first.Data["serial_number"], second.Data["serial_number"])
}

func TestSessionManagerIsolatesOrganizations(t *testing.T) {
	m := NewSessionManager(DefaultRegistry(48))

	a := m.Exec(uuid.New(), "epson TM-T20", "USB001", func(d Driver) Result {
		return d.Connect()
	})
	b := m.Exec(uuid.New(), "epson TM-T20", "USB001", func(d Driver) Result {
		return d.Connect()
	})
	assert.NotEqual(t, a.Data["serial_number"], b.Data["serial_number"])
}

func TestSessionManagerSerializesConcurrentOperations(t *testing.T) {
	m := NewSessionManager(DefaultRegistry(48))
	orgID := uuid.New()

	var active int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := m.Exec(orgID, "epson TM-T20", "USB001", func(d Driver) Result {
				if sim, ok := d.(*SimulatedDriver); ok {
					sim.SetOutput(io.Discard)
				}

				mu.Lock()
				active++
				assert.Equal(t, 1, active)
				mu.Unlock()

				r := d.PrintTestPage()

				mu.Lock()
				active--
				mu.Unlock()
				return r
			})
			assert.True(t, res.Success)
		}()
	}
	wg.Wait()
}
