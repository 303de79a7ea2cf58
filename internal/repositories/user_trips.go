package repositories

import (
	"busbuddy/internal/domain/models"
	"busbuddy/internal/utils"
)

// UserTrip is a booking joined with the trip it was made for, for the
// rider's booking history.
type UserTrip struct {
	Booking       models.Booking
	Origin        string
	Destination   string
	DepartureTime string
	PaymentStatus string
}

// ListByUserWithTrips returns a user's bookings newest first, each with its
// route and payment state. Bookings whose route was deleted come back with
// empty origin/destination.
func (r BookingRepository) ListByUserWithTrips(userID int64) ([]UserTrip, error) {
	rows, err := r.DB.Query(`
		SELECT b.id, b.user_id, b.schedule_id, b.seats,
		       COALESCE(b.seat_numbers, ''), b.amount, b.paid, b.cancelled, b.created_at,
		       COALESCE(rt.origin, ''), COALESCE(rt.destination, ''),
		       COALESCE(s.departure_time, ''), COALESCE(p.status, '')
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		LEFT JOIN routes rt ON rt.id = s.route_id
		LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserTrip{}
	for rows.Next() {
		var t UserTrip
		var seatNumbers string
		if err := rows.Scan(
			&t.Booking.ID, &t.Booking.UserID, &t.Booking.ScheduleID, &t.Booking.Seats,
			&seatNumbers, &t.Booking.Amount, &t.Booking.Paid, &t.Booking.Cancelled, &t.Booking.CreatedAt,
			&t.Origin, &t.Destination, &t.DepartureTime, &t.PaymentStatus,
		); err != nil {
			return nil, err
		}
		t.Booking.SeatNumbers = utils.SplitSeatList(seatNumbers)
		out = append(out, t)
	}
	return out, rows.Err()
}
