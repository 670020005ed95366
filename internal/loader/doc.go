// Package loader reads the trade history CSV into memory.
//
// The loader:
//   - Resolves columns by header name (original export aliases accepted)
//   - Parses every row up front; any malformed row fails the whole load
//   - Deduplicates by trade_id when the column is present
//   - Stable-sorts records by (group, timestamp)
package loader
