package sim

import (
	"fmt"
	"math"
	"sort"
)

// Track gives the lateral position of the road centerline at travelled
// distance s.
type Track func(s float64) float64

var tracks = map[string]Track{
	// Dead straight, the baseline for convergence checks.
	"straight": func(s float64) float64 { return 0 },

	// Sine weave, alternating curvature.
	"slalom": func(s float64) float64 {
		return 1.5 * math.Sin(2*math.Pi*s/40)
	},

	// Constant-curvature drift to one side.
	"sweeper": func(s float64) float64 {
		return 0.5 * 0.005 * s * s
	},
}

// GetTrack looks up a track by name.
func GetTrack(name string) (Track, error) {
	t, ok := tracks[name]
	if !ok {
		return nil, fmt.Errorf("unknown track: %s (available: %v)", name, ListTracks())
	}
	return t, nil
}

// ListTracks returns the available track names, sorted.
func ListTracks() []string {
	names := make([]string, 0, len(tracks))
	for name := range tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
