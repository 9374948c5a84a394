// Package queue defines message payloads exchanged over the message broker.
package queue

// Cart activity actions carried in CartActivityEvent.Action.
const (
	CartActionAdd    = "add"
	CartActionUpdate = "update"
	CartActionRemove = "remove"
	CartActionClear  = "clear"
)

// CartActivityEvent is published after every successful cart mutation. It
// carries enough information for downstream consumers to log or feed
// analytics without querying the primary database. PosterID and Quantity are
// zero for clear events, which affect the whole cart.
type CartActivityEvent struct {
	Action     string  `json:"action"`
	UserID     uint64  `json:"user_id"`
	PosterID   uint64  `json:"poster_id,omitempty"`
	PosterName string  `json:"poster_name,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	Price      float64 `json:"price,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
