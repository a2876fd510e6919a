package road

import (
	"errors"
	"math"
	"testing"
)

func TestTrimOutliersCleanSet(t *testing.T) {
	// Collinear points keep everything.
	points := []Point{
		{Y: 0, X: 1},
		{Y: 1, X: 2},
		{Y: 2, X: 3},
		{Y: 3, X: 4},
	}

	res, err := TrimOutliers(points, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Removed != 0 {
		t.Errorf("expected 0 removed, got %d", res.Removed)
	}
	if len(res.Points) != 4 {
		t.Errorf("expected 4 retained points, got %d", len(res.Points))
	}
	if math.Abs(res.Line.Intercept-1) > 1e-9 || math.Abs(res.Line.Slope-1) > 1e-9 {
		t.Errorf("expected line (1, 1), got (%f, %f)", res.Line.Intercept, res.Line.Slope)
	}
}

func TestTrimOutliersSingleOutlier(t *testing.T) {
	points := []Point{
		{Y: 0, X: 0},
		{Y: 1, X: 0},
		{Y: 2, X: 0},
		{Y: 3, X: 0},
		{Y: 4, X: 0},
		{Y: 5, X: 0},
		{Y: 6, X: 100},
	}

	res, err := TrimOutliers(points, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Removed != 1 {
		t.Fatalf("expected exactly 1 removed, got %d", res.Removed)
	}
	for _, p := range res.Points {
		if p.X == 100 {
			t.Error("outlier survived trimming")
		}
	}
	if math.Abs(res.Line.Intercept) > 1e-9 || math.Abs(res.Line.Slope) > 1e-9 {
		t.Errorf("expected line (0, 0), got (%f, %f)", res.Line.Intercept, res.Line.Slope)
	}

	// Input slice must be untouched.
	if points[6].X != 100 || len(points) != 7 {
		t.Error("input slice was modified")
	}
}

func TestTrimOutliersTieBreak(t *testing.T) {
	// (1, 5) and (1, -5) sit at equal distance from the initial fit x = 0;
	// the first-encountered one goes.
	points := []Point{
		{Y: 0, X: 0},
		{Y: 2, X: 0},
		{Y: 1, X: 5},
		{Y: 1, X: -5},
	}

	res, err := TrimOutliers(points, 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Removed != 1 {
		t.Fatalf("expected 1 removed, got %d", res.Removed)
	}
	for _, p := range res.Points {
		if p.Y == 1 && p.X == 5 {
			t.Error("expected first-encountered tie point to be removed")
		}
	}
	found := false
	for _, p := range res.Points {
		if p.Y == 1 && p.X == -5 {
			found = true
		}
	}
	if !found {
		t.Error("second tie point should have been retained")
	}
}

func TestTrimOutliersIdempotent(t *testing.T) {
	points := []Point{
		{Y: 0, X: 0},
		{Y: 1, X: 0},
		{Y: 2, X: 0},
		{Y: 3, X: 0},
		{Y: 4, X: 0},
		{Y: 5, X: 0},
		{Y: 6, X: 100},
	}

	first, err := TrimOutliers(points, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := TrimOutliers(first.Points, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Removed != 0 {
		t.Errorf("re-trimming a converged set removed %d points", second.Removed)
	}
	if second.Line != first.Line {
		t.Errorf("line changed on re-trim: %v vs %v", second.Line, first.Line)
	}
}

func TestTrimOutliersFloor(t *testing.T) {
	// Scattered points with a tiny threshold still leave at least two.
	points := []Point{
		{Y: 0, X: 0},
		{Y: 1, X: 10},
		{Y: 2, X: -7},
	}

	res, err := TrimOutliers(points, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) < MinFitPoints {
		t.Errorf("working set shrank below %d points: %d", MinFitPoints, len(res.Points))
	}
}

func TestTrimOutliersTooFewPoints(t *testing.T) {
	_, err := TrimOutliers([]Point{{Y: 0, X: 0}}, 1.0)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
}
