package sim

import (
	"github.com/san-kum/steerlab/internal/road"
	"github.com/san-kum/steerlab/internal/steer"
)

// Config controls one closed-loop run.
type Config struct {
	Cycles        int
	Dt            float64
	Seed          int64
	InitialOffset float64 // lateral offset of the vehicle at start
}

func DefaultConfig() Config {
	return Config{
		Cycles: 600,
		Dt:     0.05,
	}
}

// Result is the recorded trace of a run. The per-cycle slices all share the
// same length.
type Result struct {
	Times   []float64
	Angles  []float64
	Errors  []float64
	Slopes  []float64
	Offsets []float64

	// Dropouts counts cycles where the frame had too few points and the
	// previous steering angle was held.
	Dropouts int

	Metrics map[string]float64
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(offset, angle, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every cycle, for live views.
type Observer interface {
	OnCycle(frame []road.Point, cmd steer.Command, offset, t float64)
}
