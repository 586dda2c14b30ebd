package domain

// forward lists the statuses reachable from each status under the forward workflow
var forward = map[OrderStatus][]OrderStatus{
	StatusNotProcess: {StatusProcessing, StatusCancel},
	StatusProcessing: {StatusShipped, StatusCancel},
	StatusShipped:    {StatusDelivered, StatusCancel},
}

// CanTransition reports whether the forward workflow allows from -> to.
// Rewriting the current status is always allowed.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range forward[from] {
		if next == to {
			return true
		}
	}
	return false
}
