package bookings

// Status is the booking lifecycle state. A booking is created PENDING at
// wizard confirmation and moves to PAID or CANCELLED depending on how the
// payment session ends.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the booking can no longer transition.
func (s Status) IsFinal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// PaymentStatus is the state of a settlement record. Settlement is
// simulated and has no failure branch, so records are only ever COMPLETED.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)
