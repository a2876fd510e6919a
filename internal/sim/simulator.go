// Package sim closes the control loop around the steering engine: a track
// model, a synthetic perception camera, and a minimal lateral vehicle model,
// run cycle by cycle with metrics and observers.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/steerlab/internal/road"
	"github.com/san-kum/steerlab/internal/steer"
)

// Vehicle is a minimal lateral model: heading integrates the steering
// command, lateral position integrates the heading. Enough dynamics to
// close the loop, nothing more.
type Vehicle struct {
	Speed   float64 // forward speed, world units per second
	YawGain float64 // heading rate per unit of steering command
}

func DefaultVehicle() Vehicle {
	return Vehicle{
		Speed:   1.0,
		YawGain: 1.0,
	}
}

// Runner drives one engine around one track.
type Runner struct {
	engine    *steer.Engine
	track     Track
	camera    Camera
	vehicle   Vehicle
	metrics   []Metric
	observers []Observer
}

func New(engine *steer.Engine, track Track, camera Camera, vehicle Vehicle) *Runner {
	return &Runner{
		engine:  engine,
		track:   track,
		camera:  camera,
		vehicle: vehicle,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Cycles <= 0 {
		return fmt.Errorf("cycles must be positive, got %d", cfg.Cycles)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if r.camera.Rows < 2 {
		return fmt.Errorf("camera needs at least 2 rows, got %d", r.camera.Rows)
	}
	return nil
}

// Cycle is the outcome of one control cycle.
type Cycle struct {
	Frame   []road.Point
	Cmd     steer.Command // last successful command; stale on a dropout
	Angle   float64       // angle actually applied this cycle
	Offset  float64       // lateral offset from the centerline
	T       float64
	Dropout bool
}

// Stepper advances the closed loop one cycle at a time, for callers that
// interleave stepping with rendering.
type Stepper struct {
	r   *Runner
	cfg Config
	rng *rand.Rand

	pos, heading, s, t float64
	angle              float64
	cmd                steer.Command
	dropouts           int
}

func (r *Runner) Stepper(cfg Config) (*Stepper, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Stepper{
		r:   r,
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		pos: cfg.InitialOffset,
	}, nil
}

// Step runs one cycle: sample a frame, compute steering, advance the
// vehicle. Frames with too few points hold the previous angle and are
// flagged as dropouts; any other engine error aborts.
func (st *Stepper) Step() (Cycle, error) {
	frame := st.r.camera.Frame(st.rng, st.r.track, st.s, st.pos, st.heading)

	cyc := Cycle{Frame: frame, T: st.t}

	c, err := st.r.engine.ComputeSteeringAngle(frame)
	switch {
	case err == nil:
		st.cmd = c
		st.angle = c.Angle
	case errors.Is(err, steer.ErrInsufficientData):
		st.dropouts++
		cyc.Dropout = true
	default:
		return cyc, err
	}

	cyc.Cmd = st.cmd
	cyc.Angle = st.angle
	cyc.Offset = st.pos - st.r.track(st.s)

	// Positive commands steer toward negative x, matching the sign of the
	// proportional error.
	st.heading -= st.r.vehicle.YawGain * st.angle * st.cfg.Dt
	st.pos += st.r.vehicle.Speed * math.Sin(st.heading) * st.cfg.Dt
	st.s += st.r.vehicle.Speed * st.cfg.Dt
	st.t += st.cfg.Dt

	return cyc, nil
}

func (st *Stepper) Dropouts() int { return st.dropouts }

// Run executes cfg.Cycles control cycles and collects the trace.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	st, err := r.Stepper(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Cycles),
		Angles:  make([]float64, 0, cfg.Cycles),
		Errors:  make([]float64, 0, cfg.Cycles),
		Slopes:  make([]float64, 0, cfg.Cycles),
		Offsets: make([]float64, 0, cfg.Cycles),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Cycles; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		cyc, err := st.Step()
		if err != nil {
			return result, fmt.Errorf("cycle %d: %w", i, err)
		}

		for _, m := range r.metrics {
			m.Observe(cyc.Offset, cyc.Angle, cyc.T)
		}
		for _, o := range r.observers {
			o.OnCycle(cyc.Frame, cyc.Cmd, cyc.Offset, cyc.T)
		}

		result.Times = append(result.Times, cyc.T)
		result.Angles = append(result.Angles, cyc.Angle)
		result.Errors = append(result.Errors, cyc.Cmd.Error)
		result.Slopes = append(result.Slopes, cyc.Cmd.Slope)
		result.Offsets = append(result.Offsets, cyc.Offset)
	}

	result.Dropouts = st.dropouts

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
