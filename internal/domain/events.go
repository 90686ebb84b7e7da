package domain

import "time"

// Event types broadcast on the pos.events fanout exchange. Payloads carry
// the full updated entity, never a diff: consumers apply them as idempotent
// upserts keyed by order identifier.
const (
	EventOrderCreated     = "order.created"
	EventOrderUpdated     = "order.updated"
	EventPaymentProcessed = "payment.processed"
	EventTableUpdated     = "table.updated"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Order      *Order    `json:"order,omitempty"`
	Table      *Table    `json:"table,omitempty"`
	Payment    *Payment  `json:"payment,omitempty"`
}
