package services

import (
	"errors"
	"testing"

	"busbuddy/internal/domain"
	"busbuddy/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newFleetService(t *testing.T) (FleetService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return FleetService{
		DB:           db,
		BusRepo:      repositories.BusRepository{DB: db},
		RouteRepo:    repositories.RouteRepository{DB: db},
		ScheduleRepo: repositories.ScheduleRepository{DB: db},
	}, mock
}

func validPublishInput() PublishBusInput {
	return PublishBusInput{
		Name:               "Shivneri Express",
		RegistrationNumber: "MH12AB1234",
		TotalSeats:         40,
		Origin:             "Pune",
		Destination:        "Mumbai",
		Stops: []StopInput{
			{Name: "Lonavala", Time: "23:30"},
			{Name: "Khopoli", Time: "25:99"}, // unparseable, stored as midnight
		},
		DepartureTime: "22:00",
		ArrivalTime:   "06:00",
		Days:          []string{"Mon", "Wed", "Fri"},
	}
}

func TestPublishBusStoresWholeBundle(t *testing.T) {
	svc, mock := newFleetService(t)
	in := validPublishInput()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO buses").
		WithArgs("Shivneri Express", "MH12AB1234", 40, false, false, false, int64(3)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO routes").
		WithArgs(int64(2), "Pune", "Mumbai").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO stops").
		WithArgs(int64(5), "Lonavala", "23:30", 0).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO stops").
		WithArgs(int64(5), "Khopoli", "00:00", 1).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(int64(2), int64(5), "22:00", "06:00", nil, "Mon,Wed,Fri").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	out, err := svc.PublishBus(3, in)
	if err != nil {
		t.Fatalf("PublishBus: %v", err)
	}
	if out.BusID != 2 || out.RouteID != 5 || out.ScheduleID != 9 {
		t.Fatalf("unexpected ids: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPublishBusCalendarValidation(t *testing.T) {
	svc, mock := newFleetService(t)

	in := validPublishInput()
	in.TripDate = "2025-06-04" // both date and days set
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("date and days together: expected validation error, got %v", err)
	}

	in = validPublishInput()
	in.Days = nil // neither set
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("no calendar: expected validation error, got %v", err)
	}

	in = validPublishInput()
	in.Days = []string{"someday"} // no recognizable weekday
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("garbage days: expected validation error, got %v", err)
	}

	in = validPublishInput()
	in.Days = nil
	in.TripDate = "04-06-2025"
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("bad date layout: expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestPublishBusRouteValidation(t *testing.T) {
	svc, _ := newFleetService(t)

	in := validPublishInput()
	in.Origin = ""
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("missing origin: expected validation error, got %v", err)
	}

	in = validPublishInput()
	in.Destination = " pune "
	if _, err := svc.PublishBus(3, in); !domain.IsValidation(err) {
		t.Fatalf("origin equals destination: expected validation error, got %v", err)
	}
}

func TestPublishBusDuplicateRegistration(t *testing.T) {
	svc, mock := newFleetService(t)
	in := validPublishInput()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO buses").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'MH12AB1234' for key 'uniq_registration'"))
	mock.ExpectRollback()

	if _, err := svc.PublishBus(3, in); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPublishBusDefaults(t *testing.T) {
	svc, mock := newFleetService(t)

	in := validPublishInput()
	in.Name = "  "
	in.TotalSeats = 0
	in.Stops = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO buses").
		WithArgs("Unnamed bus", "MH12AB1234", 40, false, false, false, int64(3)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO routes").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	if _, err := svc.PublishBus(3, in); err != nil {
		t.Fatalf("PublishBus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
