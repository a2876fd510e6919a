package road

import "math"

// TrimResult holds the converged fit and the samples that survived trimming.
type TrimResult struct {
	Line    Line
	Points  []Point
	Removed int
}

// TrimOutliers fits a line through the points, discarding the single worst
// outlier per pass until the worst horizontal residual is within maxDistance.
// Removing one point per full re-fit avoids over-pruning while the early
// estimates are still skewed by the outliers themselves.
//
// The input slice is not modified. The working set never shrinks below
// MinFitPoints: once at the floor, the remaining points are kept even if
// their residuals exceed maxDistance.
func TrimOutliers(points []Point, maxDistance float64) (TrimResult, error) {
	work := make([]Point, len(points))
	copy(work, points)

	removed := 0
	for {
		line, err := Fit(work)
		if err != nil {
			return TrimResult{}, err
		}

		// Strict > keeps the first-encountered point on a tie, so the
		// trim order is deterministic for identical input.
		worst := -1
		worstDist := math.Inf(-1)
		for i, p := range work {
			if d := math.Abs(line.XAt(p.Y) - p.X); d > worstDist {
				worst, worstDist = i, d
			}
		}

		if worstDist <= maxDistance || len(work) == MinFitPoints {
			return TrimResult{Line: line, Points: work, Removed: removed}, nil
		}

		work = append(work[:worst], work[worst+1:]...)
		removed++
	}
}
