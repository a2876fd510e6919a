// Package metrics provides per-run scalar metrics for steering traces.
// Each implements the sim.Metric interface.
package metrics

import "math"

// ControlEffort is the mean absolute steering command over a run. High
// effort with good centering usually means the gains are fighting noise.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(offset, angle, t float64) {
	c.sum += math.Abs(angle)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
