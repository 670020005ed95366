package config

import "time"

// AnalyzerConfig is the root configuration for an analyzer run.
type AnalyzerConfig struct {
	Input    InputConfig    `yaml:"input"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig describes the trade history file.
type InputConfig struct {
	Path            string `yaml:"path"`             // CSV file path (may be overridden by -input)
	TimestampLayout string `yaml:"timestamp_layout"` // Go reference layout for the time column
	Timezone        string `yaml:"timezone"`         // IANA location name for naive timestamps
}

// AnalysisConfig holds the pattern heuristic thresholds.
type AnalysisConfig struct {
	CheapEntryThreshold float64       `yaml:"cheap_entry_threshold"` // price below which an entry counts as cheap
	HedgeWindow         time.Duration `yaml:"hedge_window"`          // max gap between first Up and first Down for a fast hedge
	SustainedTrades     int           `yaml:"sustained_trades"`      // trade count above which a group is sustained trading
	PatternWindow       int           `yaml:"pattern_window"`        // leading records inspected for entry bias
	ExcerptSize         int           `yaml:"excerpt_size"`          // rows in each head/tail excerpt
}

// OutputConfig controls report format and destination.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json", or "csv"
	Path   string `yaml:"path"`   // empty writes to stdout
}

// LoggingConfig controls diagnostic logging (the report itself always
// goes to the output destination, not the log).
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
