package steer

import "errors"

// Domain errors for steering computation.
var (
	// ErrInsufficientData indicates fewer than two center points, so no
	// line of best fit is meaningful. Recoverable: the caller should hold
	// the previous steering value and retry with the next frame. This is
	// deliberately distinct from a computed angle of zero.
	ErrInsufficientData = errors.New("steer: not enough points for a line of best fit")

	// ErrParameterBounds indicates a tuning parameter outside its valid range.
	ErrParameterBounds = errors.New("steer: tuning parameter out of valid bounds")
)
