package gateway

import (
	"context"
	"time"

	"github.com/vesaa/maderas/internal/models"
)

// Delay waits a fixed time and accepts the inquiry. It stands in for the
// latency of a remote call.
type Delay struct {
	d time.Duration
}

func NewDelay(d time.Duration) *Delay {
	return &Delay{d: d}
}

func (g *Delay) Submit(ctx context.Context, _ models.Inquiry) error {
	if g.d <= 0 {
		return nil
	}
	t := time.NewTimer(g.d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
