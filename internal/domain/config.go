package domain

// Config mirrors ~/.gensuite/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	UI                  UISettings       `yaml:"ui"`
	Engine              EngineSettings   `yaml:"engine"`
	Governor            GovernorSettings `yaml:"governor"`
	History             HistorySettings  `yaml:"history"`
}

// UISettings captures presentation toggles read at session start.
type UISettings struct {
	Scheme     string `yaml:"scheme"`
	Animations bool   `yaml:"animations"`
}

// EngineSettings locates the external compute engine.
type EngineSettings struct {
	Binary string `yaml:"binary"`
}

// GovernorSettings tunes the time-cap governor.
type GovernorSettings struct {
	PrimesBudgetSeconds int `yaml:"primes_budget"`
}

// HistorySettings controls the run log.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
}
