package repositories

import (
	"testing"
	"time"

	"busbuddy/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCalendarFromColumns(t *testing.T) {
	cal := calendarFromColumns("2025-06-04", "")
	if !cal.IsDateBound() {
		t.Fatalf("expected date-bound calendar")
	}
	if !cal.RunsOn(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("calendar should run on its date")
	}

	cal = calendarFromColumns("", "Mon, Wed")
	if !cal.IsRecurring() || !cal.RunsOnDay("wed") {
		t.Fatalf("expected recurring calendar")
	}

	// both columns set: the date wins
	cal = calendarFromColumns("2025-06-04", "Mon")
	if !cal.IsDateBound() {
		t.Fatalf("date column must take precedence")
	}

	if calendarFromColumns("", "").Filterable() {
		t.Fatalf("empty columns must yield the unfilterable calendar")
	}
	if calendarFromColumns("garbage", "").Filterable() {
		t.Fatalf("unparseable date must yield the unfilterable calendar")
	}
}

func TestListCandidatesAttachesStops(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := ScheduleRepository{DB: db}

	mock.ExpectQuery("FROM schedules").WillReturnRows(sqlmock.NewRows([]string{
		"s_id", "bus_id", "route_id", "departure_time", "arrival_time", "trip_date", "days",
		"b_id", "name", "registration_number", "total_seats", "is_ac", "is_sleeper", "women_safe",
		"origin", "destination",
	}).
		AddRow(1, 2, 5, "22:00", "06:00", "", "Mon",
			2, "Shivneri Express", "MH12AB1234", 40, false, false, false, "Pune", "Mumbai").
		AddRow(2, 3, 0, "09:00", "12:00", "", "Tue",
			3, "Orphan", "MH12XY0000", 30, false, false, false, "", ""))
	mock.ExpectQuery("FROM stops").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "name", "time_of_day", "ord"}).
			AddRow(10, 5, "Lonavala", "23:30", 0))

	cands, err := repo.ListCandidates()
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates", len(cands))
	}
	if !cands[0].HasRoute || len(cands[0].Route.Stops) != 1 {
		t.Fatalf("stops not attached: %+v", cands[0])
	}
	// a schedule whose route was deleted survives but carries no route
	if cands[1].HasRoute {
		t.Fatalf("deleted route must read as HasRoute=false: %+v", cands[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCapacityForUpdateUnknownSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := ScheduleRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedules").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"total_seats"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	if _, err := repo.CapacityForUpdate(tx, 99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
