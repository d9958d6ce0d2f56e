package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func Statuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	for _, k := range Statuses() {
		if s == k {
			return true
		}
	}
	return false
}

// transitions is the full lifecycle: an order moves forward one step at a
// time and can be cancelled until it ships. DELIVERED and CANCELLED are
// terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// NextStatuses returns the legal targets from a given status.
func NextStatuses(from OrderStatus) []OrderStatus {
	return transitions[from]
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition is the only status mutation allowed on a persisted order
// outside of a full edit. The order is left untouched on failure.
func (o *Order) Transition(to OrderStatus) error {
	if !to.Valid() {
		return ValidationError{Field: "status", Reason: "unknown status"}
	}
	if !CanTransition(o.Status, to) {
		return InvalidTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	return nil
}
