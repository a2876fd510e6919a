package sim

import (
	"math/rand"

	"github.com/san-kum/steerlab/internal/road"
)

// Camera is a synthetic stand-in for the perception stage: it samples the
// road centerline at fixed scan rows in the vehicle frame, with Gaussian
// noise and occasional gross outliers. Row 0 is the top of the frame, i.e.
// the farthest look-ahead, matching camera image coordinates where y grows
// toward the vehicle.
type Camera struct {
	Rows        int
	RowSpacing  float64 // world distance between scan rows
	NoiseStd    float64
	OutlierRate float64 // probability a sample is replaced by a gross error
	OutlierSpan float64 // magnitude range of a gross error
	DropoutRate float64 // probability a row yields no sample at all
}

func DefaultCamera() Camera {
	return Camera{
		Rows:        8,
		RowSpacing:  0.5,
		NoiseStd:    0.05,
		OutlierRate: 0.05,
		OutlierSpan: 5.0,
	}
}

// Frame samples one perception frame for a vehicle at travelled distance s
// with the given lateral position and heading.
func (c Camera) Frame(rng *rand.Rand, track Track, s, pos, heading float64) []road.Point {
	pts := make([]road.Point, 0, c.Rows)
	for row := 0; row < c.Rows; row++ {
		if c.DropoutRate > 0 && rng.Float64() < c.DropoutRate {
			continue
		}
		lookAhead := float64(c.Rows-1-row) * c.RowSpacing

		// Small-angle view transform: a yawed camera shifts points ahead
		// by heading times their distance.
		x := track(s+lookAhead) - pos - heading*lookAhead

		if c.NoiseStd > 0 {
			x += rng.NormFloat64() * c.NoiseStd
		}
		if c.OutlierRate > 0 && rng.Float64() < c.OutlierRate {
			x = (rng.Float64()*2 - 1) * c.OutlierSpan
		}

		pts = append(pts, road.Point{Y: float64(row), X: x})
	}
	return pts
}
