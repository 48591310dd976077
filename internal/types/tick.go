package types

import "time"

// Tick is a single observed trade price for a symbol at a point in time.
// Ticks are immutable once constructed and safe to share between strategies.
type Tick struct {
	// Timestamp is the observation time, normalized to UTC
	Timestamp time.Time
	// Symbol is the instrument identifier
	Symbol string
	// Price is the observed trade price
	Price float64
}
