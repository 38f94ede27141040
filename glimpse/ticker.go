package glimpse

import (
	"context"
)

// Ticker paces the frame loop. Each call to Next processes pending window
// events and returns the time since the window was created in milliseconds.
// It does not sleep: the surface is presented with vsync, so presenting
// a frame blocks until the next display refresh.
type Ticker struct {
	pollEvents  func()
	shouldClose func() bool

	// seconds since some fixed point in time
	now   func() float64
	start float64
}

func newTicker(pollEvents func(), shouldClose func() bool, now func() float64) *Ticker {
	return &Ticker{
		pollEvents:  pollEvents,
		shouldClose: shouldClose,
		now:         now,
		start:       now(),
	}
}

func (t *Ticker) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.pollEvents()

	if t.shouldClose() {
		return 0, ErrClosed
	}

	return (t.now() - t.start) * 1000, nil
}
