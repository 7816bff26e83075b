package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTheta    = 2.0
	DefaultScale    = 100.0
)

type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Seed       int64           `yaml:"seed"`
	Scale      float64         `yaml:"scale"`
	Params     ParamsConfig    `yaml:"params"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type ParamsConfig struct {
	Gravity float64 `yaml:"gravity"`
	Mass1   float64 `yaml:"mass1"`
	Mass2   float64 `yaml:"mass2"`
	Length1 float64 `yaml:"length1"`
	Length2 float64 `yaml:"length2"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Scale:      DefaultScale,
		Params: ParamsConfig{
			Gravity: pendulum.StandardGravity,
			Mass1:   pendulum.DefaultMass,
			Mass2:   pendulum.DefaultMass,
			Length1: pendulum.DefaultLength,
			Length2: pendulum.DefaultLength,
		},
		InitState: InitStateConfig{
			Theta1: DefaultTheta,
			Theta2: DefaultTheta,
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

// Dynamics builds a pendulum.Dynamics from the configured parameters.
func (c *Config) Dynamics() *pendulum.Dynamics {
	return &pendulum.Dynamics{
		G:  c.Params.Gravity,
		M1: c.Params.Mass1,
		M2: c.Params.Mass2,
		L1: c.Params.Length1,
		L2: c.Params.Length2,
	}
}

// State builds the initial pendulum.State.
func (c *Config) State() pendulum.State {
	return pendulum.NewState(c.InitState.Theta1, c.InitState.Theta2, c.InitState.Omega1, c.InitState.Omega2)
}
