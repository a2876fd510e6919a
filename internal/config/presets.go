package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"straight": {
		"clean": preset(func(c *Config) {
			c.Camera.NoiseStd = 0
			c.Camera.OutlierRate = 0
		}),
		"dirty": preset(func(c *Config) {
			c.Camera.NoiseStd = 0.1
			c.Camera.OutlierRate = 0.2
		}),
		"flaky": preset(func(c *Config) {
			c.Camera.DropoutRate = 0.3
		}),
	},
	"slalom": {
		"gentle": preset(func(c *Config) {
			c.Track = "slalom"
			c.Vehicle.Speed = 0.8
		}),
		"noisy": preset(func(c *Config) {
			c.Track = "slalom"
			c.Camera.NoiseStd = 0.1
			c.Camera.OutlierRate = 0.15
		}),
		"loose": preset(func(c *Config) {
			c.Track = "slalom"
			c.Engine.Slack = 0.05
		}),
	},
	"sweeper": {
		"wide": preset(func(c *Config) {
			c.Track = "sweeper"
			c.Cycles = 400
		}),
		"fast": preset(func(c *Config) {
			c.Track = "sweeper"
			c.Vehicle.Speed = 1.5
			c.Cycles = 400
		}),
	},
}

func GetPreset(track, name string) *Config {
	trackPresets, ok := Presets[track]
	if !ok {
		return nil
	}
	cfg, ok := trackPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(track string) []string {
	trackPresets, ok := Presets[track]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(trackPresets))
	for name := range trackPresets {
		names = append(names, name)
	}
	return names
}
