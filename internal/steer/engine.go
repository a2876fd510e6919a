// Package steer converts perceived road-center points into bounded steering
// angles using a robust line fit and a proportional-derivative control law.
//
// The derivative term is spatial, not temporal: the slope of the fitted
// centerline stands in for the heading rate, so no inter-frame state is
// needed for it. The only state crossing call boundaries is the backlash
// compensator and the diagnostic snapshot of the last cycle.
package steer

import (
	"fmt"

	"github.com/san-kum/steerlab/internal/backlash"
	"github.com/san-kum/steerlab/internal/road"
)

// Params are the tuning constants of an engine, fixed for its lifetime.
type Params struct {
	Kp              float64 // gain on the lateral error at CenterY
	Kd              float64 // gain on the centerline slope
	MaxLineDistance float64 // residual beyond which a point is an outlier
	IdealCenterX    float64 // horizontal position the road center should hold
	CenterY         float64 // scan row the lateral error is evaluated at
	Limit           float64 // symmetric bound on the output angle
	Slack           float64 // backlash slack width, 0 disables compensation
}

func (p Params) validate() error {
	checks := []struct {
		name string
		val  float64
	}{
		{"kp", p.Kp},
		{"kd", p.Kd},
		{"max_line_distance", p.MaxLineDistance},
		{"limit", p.Limit},
		{"slack", p.Slack},
	}
	for _, c := range checks {
		if c.val < 0 {
			return fmt.Errorf("%w: %s = %f", ErrParameterBounds, c.name, c.val)
		}
	}
	return nil
}

// Command is the result of one steering cycle. Error and Slope mirror the
// diagnostics stored on the engine.
type Command struct {
	Angle float64
	Error float64
	Slope float64
}

// Engine computes one steering angle per perception frame. It is owned by a
// single control loop; concurrent callers need external serialization.
type Engine struct {
	params Params
	comp   *backlash.Compensator

	lastLine  road.Line
	lastErrs  [2]float64 // proportional error, slope
	hasResult bool
}

// NewEngine validates the tuning constants and builds an engine with a fresh
// backlash compensator.
func NewEngine(p Params) (*Engine, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		params: p,
		comp:   backlash.New(p.Slack),
	}, nil
}

// Params returns the engine's tuning constants.
func (e *Engine) Params() Params { return e.params }

// ComputeSteeringAngle runs one control cycle over the raw center points:
// robust fit, lateral error at CenterY, PD law, backlash compensation, clamp.
//
// On error no engine state is mutated, so the diagnostic snapshot still
// describes the last successful cycle.
func (e *Engine) ComputeSteeringAngle(points []road.Point) (Command, error) {
	if len(points) < road.MinFitPoints {
		return Command{}, ErrInsufficientData
	}

	res, err := road.TrimOutliers(points, e.params.MaxLineDistance)
	if err != nil {
		return Command{}, fmt.Errorf("center line fit: %w", err)
	}

	centerX := res.Line.XAt(e.params.CenterY)
	propErr := e.params.IdealCenterX - centerX

	angle := propErr*e.params.Kp + res.Line.Slope*e.params.Kd
	angle = e.comp.Process(angle)

	if angle > e.params.Limit {
		angle = e.params.Limit
	} else if angle < -e.params.Limit {
		angle = -e.params.Limit
	}

	e.lastLine = res.Line
	e.lastErrs = [2]float64{propErr, res.Line.Slope}
	e.hasResult = true

	return Command{Angle: angle, Error: propErr, Slope: res.Line.Slope}, nil
}

// LastLine returns the centerline fitted by the most recent successful
// cycle. ok is false before the first success.
func (e *Engine) LastLine() (line road.Line, ok bool) {
	return e.lastLine, e.hasResult
}

// LastErrors returns the proportional error and slope from the most recent
// successful cycle. ok is false before the first success.
func (e *Engine) LastErrors() (proportional, slope float64, ok bool) {
	return e.lastErrs[0], e.lastErrs[1], e.hasResult
}

// Reset clears the backlash compensator and the diagnostic snapshot. Tuning
// constants are untouched.
func (e *Engine) Reset() {
	e.comp.Reset()
	e.lastLine = road.Line{}
	e.lastErrs = [2]float64{}
	e.hasResult = false
}
