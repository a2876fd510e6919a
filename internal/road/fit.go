package road

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MinFitPoints is the smallest point set a line can be fit through.
const MinFitPoints = 2

var (
	// ErrTooFewPoints indicates fewer than MinFitPoints samples.
	ErrTooFewPoints = errors.New("road: too few points for a line fit")

	// ErrDegenerateRows indicates all samples share one scan row, so the
	// slope over the vertical axis is undefined.
	ErrDegenerateRows = errors.New("road: all points on a single scan row")
)

// Fit computes the least-squares line x = Slope*y + Intercept through the
// points. Horizontal residuals are minimized: the vertical coordinate is the
// regressor, matching the row-sampled perception data.
func Fit(points []Point) (Line, error) {
	if len(points) < MinFitPoints {
		return Line{}, ErrTooFewPoints
	}

	ys := make([]float64, len(points))
	xs := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
		xs[i] = p.X
	}

	intercept, slope := stat.LinearRegression(ys, xs, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return Line{}, ErrDegenerateRows
	}

	return Line{Intercept: intercept, Slope: slope}, nil
}
