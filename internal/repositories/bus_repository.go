package repositories

import (
	"database/sql"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.DB.QueryRow(`
		SELECT id, name, registration_number, total_seats,
		       is_ac, is_sleeper, women_safe, COALESCE(operator_id, 0), created_at
		FROM buses
		WHERE id = ?
		LIMIT 1
	`, id).Scan(
		&b.ID,
		&b.Name,
		&b.RegistrationNumber,
		&b.TotalSeats,
		&b.IsAC,
		&b.IsSleeper,
		&b.WomenSafe,
		&b.OperatorID,
		&b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus", Err: err}
	}
	if err != nil {
		return models.Bus{}, err
	}
	return b, nil
}

func (r BusRepository) ListByOperator(operatorID int64) ([]models.Bus, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, registration_number, total_seats,
		       is_ac, is_sleeper, women_safe, COALESCE(operator_id, 0), created_at
		FROM buses
		WHERE operator_id = ?
		ORDER BY created_at DESC
	`, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(
			&b.ID, &b.Name, &b.RegistrationNumber, &b.TotalSeats,
			&b.IsAC, &b.IsSleeper, &b.WomenSafe, &b.OperatorID, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) InsertTx(tx *sql.Tx, b models.Bus) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO buses (name, registration_number, total_seats, is_ac, is_sleeper, women_safe, operator_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, b.Name, b.RegistrationNumber, b.TotalSeats, b.IsAC, b.IsSleeper, b.WomenSafe, b.OperatorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
