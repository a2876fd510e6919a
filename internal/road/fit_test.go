package road

import (
	"errors"
	"math"
	"testing"
)

func TestFitCollinear(t *testing.T) {
	// x = 2y + 3
	points := []Point{
		{Y: 0, X: 3},
		{Y: 1, X: 5},
		{Y: 2, X: 7},
		{Y: 3, X: 9},
	}

	line, err := Fit(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(line.Intercept-3) > 1e-9 {
		t.Errorf("expected intercept 3, got %f", line.Intercept)
	}
	if math.Abs(line.Slope-2) > 1e-9 {
		t.Errorf("expected slope 2, got %f", line.Slope)
	}
}

func TestFitTooFewPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single", []Point{{Y: 1, X: 2}}},
	}

	for _, tt := range tests {
		_, err := Fit(tt.points)
		if !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("%s: expected ErrTooFewPoints, got %v", tt.name, err)
		}
	}
}

func TestFitDegenerateRows(t *testing.T) {
	points := []Point{
		{Y: 1, X: 0},
		{Y: 1, X: 5},
		{Y: 1, X: -3},
	}

	_, err := Fit(points)
	if !errors.Is(err, ErrDegenerateRows) {
		t.Errorf("expected ErrDegenerateRows, got %v", err)
	}
}

func TestLineXAt(t *testing.T) {
	line := Line{Intercept: -1, Slope: 0.5}
	if got := line.XAt(4); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
}
