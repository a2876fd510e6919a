package metrics

// Reversals counts steering direction changes per cycle. A high rate
// excites backlash in the linkage and wears the servo.
type Reversals struct {
	name    string
	lastDir int
	flips   int
	samples int
}

func NewReversals() *Reversals {
	return &Reversals{
		name: "reversal_rate",
	}
}

func (r *Reversals) Name() string {
	return r.name
}

func (r *Reversals) Observe(offset, angle, t float64) {
	r.samples++

	dir := 0
	if angle > 0 {
		dir = 1
	} else if angle < 0 {
		dir = -1
	}
	if dir == 0 {
		return
	}
	if r.lastDir != 0 && dir != r.lastDir {
		r.flips++
	}
	r.lastDir = dir
}

func (r *Reversals) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.flips) / float64(r.samples)
}

func (r *Reversals) Reset() {
	r.lastDir = 0
	r.flips = 0
	r.samples = 0
}
