package metrics

import "math"

// OffTrack is the fraction of cycles the vehicle spent beyond a lateral
// threshold, e.g. outside the lane.
type OffTrack struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewOffTrack(threshold float64) *OffTrack {
	return &OffTrack{
		name:      "offtrack_fraction",
		threshold: threshold,
	}
}

func (o *OffTrack) Name() string {
	return o.name
}

func (o *OffTrack) Observe(offset, angle, t float64) {
	o.samples++
	if math.Abs(offset) > o.threshold {
		o.violations++
	}
}

func (o *OffTrack) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.violations) / float64(o.samples)
}

func (o *OffTrack) Reset() {
	o.violations = 0
	o.samples = 0
}
