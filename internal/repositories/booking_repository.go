package repositories

import (
	"database/sql"
	"strings"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

type seatQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// committedSeats sums seats over non-cancelled bookings. Always recomputed
// from the ledger, never read from a stored counter.
func committedSeats(q seatQuerier, scheduleID int64) (int, error) {
	var total int
	err := q.QueryRow(`
		SELECT COALESCE(SUM(seats), 0)
		FROM bookings
		WHERE schedule_id = ? AND cancelled = 0
	`, scheduleID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r BookingRepository) CommittedSeats(scheduleID int64) (int, error) {
	return committedSeats(r.DB, scheduleID)
}

// CommittedSeatsTx re-reads the ledger inside an open transaction, after
// the schedule row lock is held.
func (r BookingRepository) CommittedSeatsTx(tx *sql.Tx, scheduleID int64) (int, error) {
	return committedSeats(tx, scheduleID)
}

// CommittedBySchedule aggregates committed seats for many schedules in one
// query, for scoring search candidates.
func (r BookingRepository) CommittedBySchedule(scheduleIDs []int64) (map[int64]int, error) {
	out := map[int64]int{}
	if len(scheduleIDs) == 0 {
		return out, nil
	}

	args := make([]any, len(scheduleIDs))
	for i, id := range scheduleIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")

	rows, err := r.DB.Query(`
		SELECT schedule_id, COALESCE(SUM(seats), 0)
		FROM bookings
		WHERE cancelled = 0 AND schedule_id IN (`+placeholders+`)
		GROUP BY schedule_id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var total int
		if err := rows.Scan(&id, &total); err != nil {
			return nil, err
		}
		out[id] = total
	}
	return out, rows.Err()
}

func (r BookingRepository) InsertTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (user_id, schedule_id, seats, seat_numbers, amount, paid, cancelled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NOW())
	`, b.UserID, b.ScheduleID, b.Seats, utils.JoinSeatList(b.SeatNumbers), b.Amount, b.Paid)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func scanBooking(row *sql.Row) (models.Booking, error) {
	var b models.Booking
	var seatNumbers string
	err := row.Scan(
		&b.ID, &b.UserID, &b.ScheduleID, &b.Seats,
		&seatNumbers, &b.Amount, &b.Paid, &b.Cancelled, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, err
	}
	b.SeatNumbers = utils.SplitSeatList(seatNumbers)
	return b, nil
}

const bookingColumns = `id, user_id, schedule_id, seats, COALESCE(seat_numbers, ''), amount, paid, cancelled, created_at`

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return scanBooking(r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ?
		LIMIT 1
	`, id))
}

// GetForUpdateTx locks the booking row inside an open transaction.
func (r BookingRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Booking, error) {
	return scanBooking(tx.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ?
		FOR UPDATE
	`, id))
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var seatNumbers string
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ScheduleID, &b.Seats,
			&seatNumbers, &b.Amount, &b.Paid, &b.Cancelled, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.SeatNumbers = utils.SplitSeatList(seatNumbers)
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkCancelled flips the soft-cancel flag. Seat count itself is immutable;
// this is the only operation that releases capacity.
func (r BookingRepository) MarkCancelled(id int64) error {
	_, err := r.DB.Exec(`UPDATE bookings SET cancelled = 1 WHERE id = ?`, id)
	return err
}

// MarkPaidTx sets paid and the settled amount in the same transaction that
// moves the payment to succeeded.
func (r BookingRepository) MarkPaidTx(tx *sql.Tx, id int64, amount int64) error {
	_, err := tx.Exec(`UPDATE bookings SET paid = 1, amount = ? WHERE id = ?`, amount, id)
	return err
}
