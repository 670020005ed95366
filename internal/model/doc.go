// Package model defines shared data types used across the trade report pipeline.
//
// Conventions:
//   - Prices and costs: float64 dollars, as exported in the trade history CSV
//   - Timestamps: time.Time, interpreted in a single configured location
//   - IDs: string slugs for groups, uuid.UUID for trade IDs (uuid.Nil when absent)
package model
