// Package backlash compensates for mechanical play in a steering linkage.
//
// A servo driving a linkage with slack must cross the dead zone before the
// wheels move when the command reverses direction. The compensator biases
// the commanded value a half slack-width toward the current direction of
// travel so the dead zone is taken up ahead of time.
package backlash

// Compensator is the stateful transform applied to every steering command.
// One compensator belongs to one engine; it is not safe for concurrent use.
type Compensator struct {
	slack float64
	prev  float64
	dir   float64 // -1, 0 or +1; 0 until the first movement
}

// New returns a compensator for a linkage with the given slack width.
// A slack of 0 makes Process the identity transform.
func New(slack float64) *Compensator {
	return &Compensator{slack: slack}
}

// Process returns v biased toward the direction the command is moving.
// The direction persists while the command holds steady, so a constant
// command keeps a constant output.
func (c *Compensator) Process(v float64) float64 {
	switch {
	case v > c.prev:
		c.dir = 1
	case v < c.prev:
		c.dir = -1
	}
	c.prev = v

	return v + c.dir*c.slack/2
}

// Reset clears direction state, as if the linkage were freshly centered.
func (c *Compensator) Reset() {
	c.prev = 0
	c.dir = 0
}
