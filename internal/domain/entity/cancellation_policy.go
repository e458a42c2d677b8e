package entity

import (
	"fmt"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/enum"
)

// DefaultCancellationWindow is the time after issuance during which a
// document may still be cancelled.
const DefaultCancellationWindow = 24 * time.Hour

// CancellationPolicy enforces the time-bounded cancellation rule.
type CancellationPolicy struct {
	Window time.Duration
}

// NewCancellationPolicy creates a policy with the given window, falling back
// to the 24-hour default when window is not positive.
func NewCancellationPolicy(window time.Duration) CancellationPolicy {
	if window <= 0 {
		window = DefaultCancellationWindow
	}
	return CancellationPolicy{Window: window}
}

// Check returns nil when the document may be cancelled at the given instant.
// A document with no issuance timestamp is always cancellable.
func (p CancellationPolicy) Check(d *FiscalDocument, now time.Time) error {
	if d.Status == enum.DocumentStatusCanceled {
		return ErrAlreadyCanceled
	}
	if d.IssuedAt.IsZero() {
		return nil
	}
	if now.Sub(d.IssuedAt) > p.Window {
		return fmt.Errorf("%w: issued more than %d hours ago", ErrCancellationWindowExpired, int(p.Window.Hours()))
	}
	return nil
}
