package repositories

import (
	"database/sql"
	"strings"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/utils"
)

type ScheduleRepository struct {
	DB *sql.DB
}

// TripCandidate is a schedule joined with its bus and route, the unit the
// search pipeline filters.
type TripCandidate struct {
	Schedule models.Schedule
	Bus      models.Bus
	Route    models.Route
	HasRoute bool
}

// calendarFromColumns rebuilds the tagged calendar from the two storage
// columns. A row with both set is treated as date-bound; the date wins.
func calendarFromColumns(tripDate, days string) models.Calendar {
	if strings.TrimSpace(tripDate) != "" {
		if d, err := utils.ParseDate(tripDate); err == nil {
			return models.DateBound(d)
		}
	}
	if strings.TrimSpace(days) != "" {
		return models.Recurring(utils.SplitCSV(days))
	}
	return models.Calendar{}
}

// ListCandidates loads every schedule with its bus and (optional) route.
// Schedules whose route was deleted come back with HasRoute=false and are
// skipped by stop matching.
func (r ScheduleRepository) ListCandidates() ([]TripCandidate, error) {
	rows, err := r.DB.Query(`
		SELECT s.id, s.bus_id, COALESCE(s.route_id, 0),
		       s.departure_time, s.arrival_time,
		       COALESCE(s.trip_date, ''), COALESCE(s.days, ''),
		       b.id, b.name, b.registration_number, b.total_seats,
		       b.is_ac, b.is_sleeper, b.women_safe,
		       COALESCE(rt.origin, ''), COALESCE(rt.destination, '')
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		LEFT JOIN routes rt ON rt.id = s.route_id
		ORDER BY s.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TripCandidate{}
	for rows.Next() {
		var (
			c        TripCandidate
			tripDate string
			days     string
		)
		if err := rows.Scan(
			&c.Schedule.ID, &c.Schedule.BusID, &c.Schedule.RouteID,
			&c.Schedule.DepartureTime, &c.Schedule.ArrivalTime,
			&tripDate, &days,
			&c.Bus.ID, &c.Bus.Name, &c.Bus.RegistrationNumber, &c.Bus.TotalSeats,
			&c.Bus.IsAC, &c.Bus.IsSleeper, &c.Bus.WomenSafe,
			&c.Route.Origin, &c.Route.Destination,
		); err != nil {
			return nil, err
		}
		c.Schedule.Calendar = calendarFromColumns(tripDate, days)
		c.HasRoute = c.Schedule.RouteID != 0
		c.Route.ID = c.Schedule.RouteID
		c.Route.BusID = c.Schedule.BusID
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachStops(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r ScheduleRepository) attachStops(cands []TripCandidate) error {
	ids := []any{}
	seen := map[int64]bool{}
	for _, c := range cands {
		if c.HasRoute && !seen[c.Route.ID] {
			seen[c.Route.ID] = true
			ids = append(ids, c.Route.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := r.DB.Query(`
		SELECT id, route_id, name, time_of_day, ord
		FROM stops
		WHERE route_id IN (`+placeholders+`)
		ORDER BY route_id, ord ASC
	`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byRoute := map[int64][]models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Name, &s.Time, &s.Order); err != nil {
			return err
		}
		byRoute[s.RouteID] = append(byRoute[s.RouteID], s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range cands {
		if cands[i].HasRoute {
			cands[i].Route.Stops = byRoute[cands[i].Route.ID]
		}
	}
	return nil
}

// CapacityForUpdate locks the schedule row for the duration of the caller's
// transaction and returns the bus capacity. This is what serializes
// concurrent reservations per schedule.
func (r ScheduleRepository) CapacityForUpdate(tx *sql.Tx, scheduleID int64) (int, error) {
	var capacity int
	err := tx.QueryRow(`
		SELECT b.total_seats
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE s.id = ?
		FOR UPDATE
	`, scheduleID).Scan(&capacity)
	if err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	if err != nil {
		return 0, err
	}
	return capacity, nil
}

func (r ScheduleRepository) GetByID(id int64) (models.Schedule, error) {
	var (
		s        models.Schedule
		tripDate string
		days     string
	)
	err := r.DB.QueryRow(`
		SELECT id, bus_id, COALESCE(route_id, 0), departure_time, arrival_time,
		       COALESCE(trip_date, ''), COALESCE(days, '')
		FROM schedules
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&s.ID, &s.BusID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime, &tripDate, &days)
	if err == sql.ErrNoRows {
		return models.Schedule{}, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	if err != nil {
		return models.Schedule{}, err
	}
	s.Calendar = calendarFromColumns(tripDate, days)
	return s, nil
}

// InsertTx stores a schedule. Exactly one of the calendar variants ends up
// in the row: trip_date for date-bound, days for recurring.
func (r ScheduleRepository) InsertTx(tx *sql.Tx, s models.Schedule) (int64, error) {
	var routeID any
	if s.RouteID != 0 {
		routeID = s.RouteID
	}

	var tripDate any
	var days any
	if d, ok := s.Calendar.Date(); ok {
		tripDate = utils.FormatDate(d)
	} else if ds := s.Calendar.Days(); len(ds) > 0 {
		days = strings.Join(ds, ",")
	}

	res, err := tx.Exec(`
		INSERT INTO schedules (bus_id, route_id, departure_time, arrival_time, trip_date, days)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.BusID, routeID, s.DepartureTime, s.ArrivalTime, tripDate, days)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
