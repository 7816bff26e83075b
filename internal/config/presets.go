package config

import (
	"sort"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

func preset(dt, duration, theta1, theta2 float64) *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         dt,
		Duration:   duration,
		Scale:      DefaultScale,
		Params: ParamsConfig{
			Gravity: pendulum.StandardGravity,
			Mass1:   pendulum.DefaultMass,
			Mass2:   pendulum.DefaultMass,
			Length1: pendulum.DefaultLength,
			Length2: pendulum.DefaultLength,
		},
		InitState: InitStateConfig{Theta1: theta1, Theta2: theta2},
	}
}

var Presets = map[string]*Config{
	"gentle":    preset(0.01, 30.0, 0.3, 0.3),
	"symmetric": preset(0.005, 30.0, 1.5, 1.5),
	"classic":   preset(0.01, 30.0, 2.0, 2.0),
	"chaos":     preset(0.005, 60.0, 3.0, 3.0),
}

// GetPreset returns a copy so callers can override fields freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
