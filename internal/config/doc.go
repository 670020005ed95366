// Package config loads and validates analyzer configuration.
//
// Configuration is YAML with ${VAR} environment expansion. Every field is
// optional; defaults reproduce the reference report output.
package config
