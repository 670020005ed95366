package config

import "time"

// Default values for optional configuration fields. The analysis
// thresholds must stay at these values to reproduce reference output.
const (
	DefaultTimestampLayout     = "2006-01-02 15:04:05"
	DefaultTimezone            = "UTC"
	DefaultCheapEntryThreshold = 0.35
	DefaultHedgeWindow         = 60 * time.Second
	DefaultSustainedTrades     = 50
	DefaultPatternWindow       = 20
	DefaultExcerptSize         = 10
	DefaultFormat              = "text"
	DefaultLogLevel            = "info"
)

func (c *AnalyzerConfig) applyDefaults() {
	if c.Input.TimestampLayout == "" {
		c.Input.TimestampLayout = DefaultTimestampLayout
	}
	if c.Input.Timezone == "" {
		c.Input.Timezone = DefaultTimezone
	}

	if c.Analysis.CheapEntryThreshold == 0 {
		c.Analysis.CheapEntryThreshold = DefaultCheapEntryThreshold
	}
	if c.Analysis.HedgeWindow == 0 {
		c.Analysis.HedgeWindow = DefaultHedgeWindow
	}
	if c.Analysis.SustainedTrades == 0 {
		c.Analysis.SustainedTrades = DefaultSustainedTrades
	}
	if c.Analysis.PatternWindow == 0 {
		c.Analysis.PatternWindow = DefaultPatternWindow
	}
	if c.Analysis.ExcerptSize == 0 {
		c.Analysis.ExcerptSize = DefaultExcerptSize
	}

	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
