package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side identifies which outcome of a binary market a trade bought.
type Side int

const (
	// SideUp is a trade on the Up outcome.
	SideUp Side = iota
	// SideDown is a trade on the Down outcome.
	SideDown
)

// ParseSide converts the CSV outcome column to a Side.
// Matching is case-insensitive; anything other than "up" or "down" is an error.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return SideUp, nil
	case "down":
		return SideDown, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// String returns the display form used in rendered reports.
func (s Side) String() string {
	if s == SideUp {
		return "Up"
	}
	return "Down"
}

// MarshalText makes sides render as "Up"/"Down" in JSON reports.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TradeRecord is one executed trade from the input table.
// Records are never mutated after load.
type TradeRecord struct {
	TradeID    uuid.UUID `json:"trade_id,omitempty"` // uuid.Nil when the input carries no trade_id column
	GroupID    string    `json:"group_id"`           // Market slug (grouping key)
	GroupTitle string    `json:"group_title"`        // Display title, constant within a group
	Timestamp  time.Time `json:"timestamp"`          // Execution time
	Side       Side      `json:"side"`               // Up or Down
	Quantity   float64   `json:"quantity"`           // Shares, >= 0
	Price      float64   `json:"price"`              // Per-share price in dollars
	Cost       float64   `json:"cost"`               // Total paid in dollars (not re-derived from Quantity*Price)
}
