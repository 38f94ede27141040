package orion

import (
	"context"
	"log/slog"
	"time"

	"github.com/oliverbestmann/triangle/triangle"
)

type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a frame at the current time. It returns true every 60 frames.
func (t *FrameTimes) Tick() bool {
	return t.TickAt(time.Now())
}

func (t *FrameTimes) TickAt(now time.Time) bool {
	if t.FrameCount > 0 {
		dt := now.Sub(t.lastTime)
		t.update(dt)
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}

// StatsTicker measures the time between ticks of the wrapped ticker
// and logs the frame rate every 60 frames.
type StatsTicker struct {
	ticker triangle.Ticker
	Times  FrameTimes
}

func NewStatsTicker(ticker triangle.Ticker) *StatsTicker {
	return &StatsTicker{ticker: ticker}
}

func (s *StatsTicker) Next(ctx context.Context) (float64, error) {
	timestamp, err := s.ticker.Next(ctx)
	if err != nil {
		return timestamp, err
	}

	if s.Times.Tick() {
		slog.Debug(
			"Frame stats",
			slog.Uint64("frames", s.Times.FrameCount),
			slog.Float64("fps", s.Times.FPS()),
			slog.Duration("max", s.Times.MaxDuration),
		)
	}

	return timestamp, nil
}
