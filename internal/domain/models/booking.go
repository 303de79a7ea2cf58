package models

import "time"

// Payment status machine. Transitions are forward-only:
// initiated -> succeeded | failed, nothing after that.
const (
	PaymentInitiated = "initiated"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

// PaymentCanTransition reports whether a status change is legal.
func PaymentCanTransition(from, to string) bool {
	if from != PaymentInitiated {
		return false
	}
	return to == PaymentSucceeded || to == PaymentFailed
}

// Booking holds seats against a schedule. Seats is immutable once created;
// cancelling is the only way capacity comes back.
type Booking struct {
	ID          int64
	UserID      int64
	ScheduleID  int64
	Seats       int
	SeatNumbers []string
	Amount      int64
	Paid        bool
	Cancelled   bool
	CreatedAt   time.Time
}

// Payment is the one-to-one placeholder created with every booking.
type Payment struct {
	ID                int64
	BookingID         int64
	Provider          string
	Reference         string
	ProviderPaymentID string
	Amount            int64
	Status            string
}
