package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/steerlab/internal/sim"
	"github.com/san-kum/steerlab/internal/steer"
)

const (
	DefaultCycles = 600
	DefaultDt     = 0.05
	DefaultKp     = 0.25
	DefaultKd     = 1.4
	DefaultLimit  = 0.6
)

type Config struct {
	Track         string        `yaml:"track"`
	Cycles        int           `yaml:"cycles"`
	Dt            float64       `yaml:"dt"`
	Seed          int64         `yaml:"seed"`
	InitialOffset float64       `yaml:"initial_offset"`
	Engine        EngineConfig  `yaml:"engine"`
	Camera        CameraConfig  `yaml:"camera"`
	Vehicle       VehicleConfig `yaml:"vehicle"`
}

type EngineConfig struct {
	Kp              float64 `yaml:"kp"`
	Kd              float64 `yaml:"kd"`
	MaxLineDistance float64 `yaml:"max_line_distance"`
	IdealCenterX    float64 `yaml:"ideal_center_x"`
	CenterY         float64 `yaml:"center_y"`
	Limit           float64 `yaml:"limit"`
	Slack           float64 `yaml:"slack"`
}

type CameraConfig struct {
	Rows        int     `yaml:"rows"`
	RowSpacing  float64 `yaml:"row_spacing"`
	NoiseStd    float64 `yaml:"noise_std"`
	OutlierRate float64 `yaml:"outlier_rate"`
	OutlierSpan float64 `yaml:"outlier_span"`
	DropoutRate float64 `yaml:"dropout_rate"`
}

type VehicleConfig struct {
	Speed   float64 `yaml:"speed"`
	YawGain float64 `yaml:"yaw_gain"`
}

func DefaultConfig() *Config {
	return &Config{
		Track:         "straight",
		Cycles:        DefaultCycles,
		Dt:            DefaultDt,
		InitialOffset: 1.0,
		Engine: EngineConfig{
			Kp:              DefaultKp,
			Kd:              DefaultKd,
			MaxLineDistance: 0.5,
			IdealCenterX:    0,
			CenterY:         7,
			Limit:           DefaultLimit,
			Slack:           0,
		},
		Camera: CameraConfig{
			Rows:        8,
			RowSpacing:  0.5,
			NoiseStd:    0.05,
			OutlierRate: 0.05,
			OutlierSpan: 5.0,
		},
		Vehicle: VehicleConfig{
			Speed:   1.0,
			YawGain: 1.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineParams maps the config onto engine tuning constants.
func (c *Config) EngineParams() steer.Params {
	return steer.Params{
		Kp:              c.Engine.Kp,
		Kd:              c.Engine.Kd,
		MaxLineDistance: c.Engine.MaxLineDistance,
		IdealCenterX:    c.Engine.IdealCenterX,
		CenterY:         c.Engine.CenterY,
		Limit:           c.Engine.Limit,
		Slack:           c.Engine.Slack,
	}
}

func (c *Config) CameraModel() sim.Camera {
	return sim.Camera{
		Rows:        c.Camera.Rows,
		RowSpacing:  c.Camera.RowSpacing,
		NoiseStd:    c.Camera.NoiseStd,
		OutlierRate: c.Camera.OutlierRate,
		OutlierSpan: c.Camera.OutlierSpan,
		DropoutRate: c.Camera.DropoutRate,
	}
}

func (c *Config) VehicleModel() sim.Vehicle {
	return sim.Vehicle{
		Speed:   c.Vehicle.Speed,
		YawGain: c.Vehicle.YawGain,
	}
}

func (c *Config) RunConfig() sim.Config {
	return sim.Config{
		Cycles:        c.Cycles,
		Dt:            c.Dt,
		Seed:          c.Seed,
		InitialOffset: c.InitialOffset,
	}
}
