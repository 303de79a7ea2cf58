package repositories

import (
	"database/sql"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

// GetWithStops loads a route and its stops ordered by ord.
func (r RouteRepository) GetWithStops(id int64) (models.Route, error) {
	var rt models.Route
	err := r.DB.QueryRow(`
		SELECT id, bus_id, origin, destination
		FROM routes
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&rt.ID, &rt.BusID, &rt.Origin, &rt.Destination)
	if err == sql.ErrNoRows {
		return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
	}
	if err != nil {
		return models.Route{}, err
	}

	stops, err := r.stopsForRoute(rt.ID)
	if err != nil {
		return models.Route{}, err
	}
	rt.Stops = stops
	return rt, nil
}

func (r RouteRepository) stopsForRoute(routeID int64) ([]models.Stop, error) {
	rows, err := r.DB.Query(`
		SELECT id, route_id, name, time_of_day, ord
		FROM stops
		WHERE route_id = ?
		ORDER BY ord ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Name, &s.Time, &s.Order); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r RouteRepository) InsertTx(tx *sql.Tx, rt models.Route) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO routes (bus_id, origin, destination)
		VALUES (?, ?, ?)
	`, rt.BusID, rt.Origin, rt.Destination)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertStopsTx writes stops with a dense zero-based order regardless of
// the order values the caller passed in.
func (r RouteRepository) InsertStopsTx(tx *sql.Tx, routeID int64, stops []models.Stop) error {
	for _, s := range models.RenumberStops(stops) {
		if _, err := tx.Exec(`
			INSERT INTO stops (route_id, name, time_of_day, ord)
			VALUES (?, ?, ?, ?)
		`, routeID, s.Name, s.Time, s.Order); err != nil {
			return err
		}
	}
	return nil
}
