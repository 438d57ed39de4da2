package config

var Presets = map[string]*Config{
	"demo": {
		Eccentricity: 2.0, Order: 32, Shape: 1.0,
		Grid: GridConfig{From: 0.1, To: 20.0, Count: 10},
	},
	"near-parabolic": {
		Eccentricity: 1.05, Order: 64, Shape: 1.0,
		Grid: GridConfig{From: 0.01, To: 5.0, Count: 50},
	},
	"high-ecc": {
		Eccentricity: 10.0, Order: 32, Shape: 1.0,
		Grid: GridConfig{From: 0.1, To: 500.0, Count: 100},
	},
	"coarse": {
		Eccentricity: 2.0, Order: 8, Shape: 1.0,
		Grid: GridConfig{From: 0.1, To: 20.0, Count: 10},
	},
	"flattened": {
		Eccentricity: 2.0, Order: 32, Shape: 0.5,
		Grid: GridConfig{From: 0.1, To: 20.0, Count: 10},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
