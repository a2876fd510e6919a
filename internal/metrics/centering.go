package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Centering is the root-mean-square lateral offset from the track
// centerline, the primary tuning objective.
type Centering struct {
	name    string
	squares []float64
}

func NewCentering() *Centering {
	return &Centering{
		name: "centering_rms",
	}
}

func (c *Centering) Name() string {
	return c.name
}

func (c *Centering) Observe(offset, angle, t float64) {
	c.squares = append(c.squares, offset*offset)
}

func (c *Centering) Value() float64 {
	if len(c.squares) == 0 {
		return 0
	}
	return math.Sqrt(stat.Mean(c.squares, nil))
}

func (c *Centering) Reset() {
	c.squares = c.squares[:0]
}
