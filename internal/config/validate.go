package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all values are usable. Defaults must already be applied.
func (c *AnalyzerConfig) Validate() error {
	if _, err := time.LoadLocation(c.Input.Timezone); err != nil {
		return fmt.Errorf("input.timezone %q is not a valid location: %w", c.Input.Timezone, err)
	}

	if c.Analysis.CheapEntryThreshold <= 0 {
		return errors.New("analysis.cheap_entry_threshold must be > 0")
	}
	if c.Analysis.HedgeWindow <= 0 {
		return errors.New("analysis.hedge_window must be > 0")
	}
	if c.Analysis.SustainedTrades < 1 {
		return errors.New("analysis.sustained_trades must be >= 1")
	}
	if c.Analysis.PatternWindow < 1 {
		return errors.New("analysis.pattern_window must be >= 1")
	}
	if c.Analysis.ExcerptSize < 1 {
		return errors.New("analysis.excerpt_size must be >= 1")
	}

	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("output.format must be text, json, or csv, got %q", c.Output.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	return nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c *AnalyzerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Input.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
