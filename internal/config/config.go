package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOrder        = 32
	DefaultEccentricity = 1.1
	DefaultShape        = 1.0
	DefaultGridFrom     = 0.1
	DefaultGridTo       = 20.0
	DefaultGridCount    = 10
)

type Config struct {
	Eccentricity  float64    `yaml:"eccentricity"`
	Order         int        `yaml:"order"`
	Shape         float64    `yaml:"shape"`
	MeanAnomalies []float64  `yaml:"mean_anomalies"`
	Grid          GridConfig `yaml:"grid"`
}

// GridConfig describes a linearly spaced mean-anomaly grid, used when no
// explicit list is given.
type GridConfig struct {
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Count int     `yaml:"count"`
}

func DefaultConfig() *Config {
	return &Config{
		Eccentricity: DefaultEccentricity,
		Order:        DefaultOrder,
		Shape:        DefaultShape,
		Grid: GridConfig{
			From:  DefaultGridFrom,
			To:    DefaultGridTo,
			Count: DefaultGridCount,
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

// Anomalies resolves the input array: the explicit list wins, otherwise
// the grid is expanded.
func (c *Config) Anomalies() ([]float64, error) {
	if len(c.MeanAnomalies) > 0 {
		out := make([]float64, len(c.MeanAnomalies))
		copy(out, c.MeanAnomalies)
		return out, nil
	}
	if c.Grid.Count < 2 {
		return nil, fmt.Errorf("grid count must be at least 2, got %d", c.Grid.Count)
	}
	out := make([]float64, c.Grid.Count)
	step := (c.Grid.To - c.Grid.From) / float64(c.Grid.Count-1)
	for i := range out {
		out[i] = c.Grid.From + float64(i)*step
	}
	return out, nil
}
