package types

import "time"

// Action is the directional decision a strategy emits for a tick.
type Action string

const (
	// ActionBuy means the tick price is strictly above the reference average
	ActionBuy Action = "BUY"
	// ActionSell means the tick price is strictly below the reference average
	ActionSell Action = "SELL"
	// ActionHold means the tick price equals the reference average
	ActionHold Action = "HOLD"
)

// ActionFor maps a price and a reference average to an action.
// The comparisons are strict, so an exactly equal pair holds.
// Every strategy derives its action through this function.
func ActionFor(price, reference float64) Action {
	switch {
	case price > reference:
		return ActionBuy
	case price < reference:
		return ActionSell
	default:
		return ActionHold
	}
}

// Signal records the decision a strategy made for a single tick.
// Signals are immutable once constructed.
type Signal struct {
	// Timestamp is the time of the triggering tick
	Timestamp time.Time
	// Symbol is the symbol of the triggering tick
	Symbol string
	// Action is the decision derived from price and reference
	Action Action
	// Price is the price of the triggering tick
	Price float64
	// Reference is the average value the price was compared against
	Reference float64
}
