package services

import (
	"testing"
	"time"

	"busbuddy/internal/domain"
	"busbuddy/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func userTripColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "schedule_id", "seats", "seat_numbers", "amount", "paid", "cancelled", "created_at",
		"origin", "destination", "departure_time", "payment_status",
	})
}

func TestUserBookingsFrequentRoutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := DashboardService{BookingRepo: repositories.BookingRepository{DB: db}}

	now := time.Now()
	rows := userTripColumns().
		AddRow(5, 3, 11, 2, "A1,A2", 780, true, false, now, "Pune", "Mumbai", "22:00", "succeeded").
		AddRow(4, 3, 12, 1, "", 390, true, false, now, "Pune", "Mumbai", "23:00", "succeeded").
		AddRow(3, 3, 13, 1, "", 500, false, true, now, "Nashik", "Pune", "07:00", "failed").
		AddRow(2, 3, 14, 1, "", 0, false, false, now, "", "", "09:00", "initiated") // route deleted
	mock.ExpectQuery("FROM bookings").WithArgs(int64(3)).WillReturnRows(rows)

	trips, frequent, err := svc.UserBookings(3)
	if err != nil {
		t.Fatalf("UserBookings: %v", err)
	}
	if len(trips) != 4 {
		t.Fatalf("expected all bookings back, got %d", len(trips))
	}
	if trips[0].Booking.ID != 5 {
		t.Fatalf("expected newest first: %+v", trips[0])
	}
	if got := trips[0].Booking.SeatNumbers; len(got) != 2 || got[0] != "A1" {
		t.Fatalf("seat numbers not split: %v", got)
	}

	// deleted-route booking contributes no route pair
	if len(frequent) != 2 {
		t.Fatalf("frequent routes: %+v", frequent)
	}
	if frequent[0].Origin != "Pune" || frequent[0].Destination != "Mumbai" || frequent[0].Count != 2 {
		t.Fatalf("top route wrong: %+v", frequent[0])
	}
	if frequent[1].Count != 1 {
		t.Fatalf("second route wrong: %+v", frequent[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserBookingsRequiresUser(t *testing.T) {
	svc := DashboardService{}
	if _, _, err := svc.UserBookings(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
