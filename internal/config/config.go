// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventsPath and RosterPath point at the match feed JSON exports.
	// Empty paths make the service run on a generated fixture match.
	EventsPath string `koanf:"events_path"`
	RosterPath string `koanf:"roster_path"`

	// ExtendedFeatures selects the nine-feature shot model over the
	// basic distance/angle variant.
	ExtendedFeatures bool `koanf:"extended_features"`

	// Model hyperparameters.
	ModelEpochs       int     `koanf:"model_epochs"`
	ModelLearningRate float64 `koanf:"model_learning_rate"`
	ModelTestFraction float64 `koanf:"model_test_fraction"`

	// RandomSeed drives the simulator jitter, the variety phrasing and
	// the train/test shuffle.
	RandomSeed int64 `koanf:"random_seed"`

	// Simulator motion factors.
	Smoothing        float64 `koanf:"smoothing"`
	AggressiveChance float64 `koanf:"aggressive_chance"`

	// VarietyChance is the probability of the link-play phrasing on the
	// player advisor's default branch.
	VarietyChance float64 `koanf:"variety_chance"`

	// Team cascade thresholds.
	XGDiffLead      float64 `koanf:"xg_diff_lead"`
	PossessionPush  float64 `koanf:"possession_push"`
	PassSuccessHigh float64 `koanf:"pass_success_high"`
	PassSuccessLow  float64 `koanf:"pass_success_low"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		ExtendedFeatures:  true,
		ModelEpochs:       1000,
		ModelLearningRate: 0.1,
		ModelTestFraction: 0.2,
		RandomSeed:        42,
		Smoothing:         0.3,
		AggressiveChance:  0.2,
		VarietyChance:     0.3,
		XGDiffLead:        0.5,
		PossessionPush:    55,
		PassSuccessHigh:   85,
		PassSuccessLow:    70,
	}
}
