package models

import "time"

// Bus is the vehicle a conductor publishes schedules for. Capacity and
// amenity flags live here; availability is always derived from bookings.
type Bus struct {
	ID                 int64
	Name               string
	RegistrationNumber string
	TotalSeats         int
	IsAC               bool
	IsSleeper          bool
	WomenSafe          bool
	OperatorID         int64
	CreatedAt          time.Time
}
