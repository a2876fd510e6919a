package backlash

import "testing"

func TestZeroSlackIsIdentity(t *testing.T) {
	c := New(0)
	for _, v := range []float64{0, 1.5, -3, 0.25, 0.25, -0.25} {
		if got := c.Process(v); got != v {
			t.Errorf("Process(%f) = %f, want identity", v, got)
		}
	}
}

func TestDirectionBias(t *testing.T) {
	c := New(2.0)

	if got := c.Process(1.0); got != 2.0 {
		t.Errorf("increasing command: expected 2.0, got %f", got)
	}
	// Holding steady keeps the bias.
	if got := c.Process(1.0); got != 2.0 {
		t.Errorf("steady command: expected 2.0, got %f", got)
	}
	// Reversal flips the bias.
	if got := c.Process(0.5); got != -0.5 {
		t.Errorf("decreasing command: expected -0.5, got %f", got)
	}
}

func TestFirstCallUnbiased(t *testing.T) {
	c := New(2.0)
	if got := c.Process(0); got != 0 {
		t.Errorf("no movement yet: expected 0, got %f", got)
	}
}

func TestReset(t *testing.T) {
	c := New(2.0)
	c.Process(1.0)
	c.Reset()
	if got := c.Process(0); got != 0 {
		t.Errorf("after reset: expected 0, got %f", got)
	}
}

func TestDeterministic(t *testing.T) {
	inputs := []float64{0.5, 1.0, 0.2, -0.3, -0.3, 0.8}

	a, b := New(1.0), New(1.0)
	for _, v := range inputs {
		if got, want := a.Process(v), b.Process(v); got != want {
			t.Fatalf("diverged on %f: %f vs %f", v, got, want)
		}
	}
}
