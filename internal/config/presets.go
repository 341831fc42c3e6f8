package config

import "sort"

// Presets are named rod setups, in displayed units.
var Presets = map[string]*Config{
	"default": {
		Unit: "m", ChargeDensity: 1.0, Length: 2.0, Distance: 1.0,
	},
	"short_rod": {
		Unit: "m", ChargeDensity: 1.0, Length: 0.2, Distance: 1.0,
	},
	"long_rod": {
		Unit: "m", ChargeDensity: 1.0, Length: 20.0, Distance: 1.0,
	},
	"far_point": {
		Unit: "m", ChargeDensity: 1.0, Length: 2.0, Distance: 10.0,
	},
	"bench": {
		Unit: "cm", ChargeDensity: 0.5, Length: 30.0, Distance: 5.0,
	},
}

// GetPreset returns the defaults overlaid with the named rod setup, or nil
// when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Unit = p.Unit
	cfg.ChargeDensity = p.ChargeDensity
	cfg.Length = p.Length
	cfg.Distance = p.Distance
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
