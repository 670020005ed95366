// Package analysis computes per-group position statistics, pattern
// heuristics, and the global summary over a loaded trade table.
//
// All functions are pure: the same records and thresholds always
// produce the same reports. Input slices are never mutated.
package analysis
