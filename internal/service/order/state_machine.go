package order

import "restaurant-pos/internal/domain"

// allowedTransitions is the order status graph. It is strictly linear:
// pending -> preparing -> ready -> completed, with cancellation possible
// only before the kitchen finishes. No shortcuts: completing a pending
// order must pass through preparing and ready. Cancelling from ready or
// completed is rejected because no refund path is modeled.
var allowedTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusPending:   {domain.StatusPreparing, domain.StatusCancelled},
	domain.StatusPreparing: {domain.StatusReady, domain.StatusCancelled},
	domain.StatusReady:     {domain.StatusCompleted},
	domain.StatusCompleted: {},
	domain.StatusCancelled: {},
}

// CanTransition reports whether from -> to is a defined edge of the graph.
func CanTransition(from, to domain.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
