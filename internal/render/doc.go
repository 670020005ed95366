// Package render formats analysis reports for human review.
//
// Formats:
//   - text: the canonical fixed-precision strategy report (default)
//   - json: indented JSON of the report structs
//   - csv: one summary row per group plus a global row
//
// Absent sides and undefined ratios always render as explicit markers,
// never as NaN or Inf.
package render
