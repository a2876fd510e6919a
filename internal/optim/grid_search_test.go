package optim

import (
	"context"
	"errors"
	"testing"
)

func TestSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch(
		[]string{"kp", "kd"},
		[][]float64{
			{0.1, 0.3, 0.5},
			{0.5, 1.0, 2.0},
		},
	)

	// Quadratic bowl with its minimum on the grid.
	evaluate := func(ctx context.Context, p map[string]float64) (float64, error) {
		dkp := p["kp"] - 0.3
		dkd := p["kd"] - 1.0
		return dkp*dkp + dkd*dkd, nil
	}

	params, score, err := g.Search(context.Background(), evaluate)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if params["kp"] != 0.3 || params["kd"] != 1.0 {
		t.Errorf("expected (0.3, 1.0), got (%f, %f)", params["kp"], params["kd"])
	}
	if score != 0 {
		t.Errorf("expected score 0, got %f", score)
	}
}

func TestSearchSkipsFailedCandidates(t *testing.T) {
	g := NewGridSearch([]string{"kp"}, [][]float64{{1, 2, 3}})

	evaluate := func(ctx context.Context, p map[string]float64) (float64, error) {
		if p["kp"] == 1 {
			return 0, errors.New("unstable run")
		}
		return p["kp"], nil
	}

	params, score, err := g.Search(context.Background(), evaluate)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if params["kp"] != 2 || score != 2 {
		t.Errorf("expected kp 2 with score 2, got %v score %f", params, score)
	}
}

func TestSearchCanceled(t *testing.T) {
	g := NewGridSearch([]string{"kp"}, [][]float64{{1, 2}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evaluate := func(ctx context.Context, p map[string]float64) (float64, error) {
		t.Error("evaluate should not run after cancellation")
		return 0, nil
	}

	if _, _, err := g.Search(ctx, evaluate); err == nil {
		t.Error("expected context error")
	}
}
