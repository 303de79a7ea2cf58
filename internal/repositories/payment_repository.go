package repositories

import (
	"database/sql"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

const paymentColumns = `id, booking_id, provider, reference, COALESCE(provider_payment_id, ''), amount, status`

func scanPayment(row *sql.Row) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.Provider, &p.Reference, &p.ProviderPaymentID, &p.Amount, &p.Status)
	if err == sql.ErrNoRows {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) InsertTx(tx *sql.Tx, p models.Payment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO payments (booking_id, provider, reference, amount, status)
		VALUES (?, ?, ?, ?, ?)
	`, p.BookingID, p.Provider, p.Reference, p.Amount, p.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	return scanPayment(r.DB.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		LIMIT 1
	`, id))
}

func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	return scanPayment(r.DB.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE booking_id = ?
		LIMIT 1
	`, bookingID))
}

// GetForUpdateTx locks the payment row so concurrent confirmations of the
// same payment serialize.
func (r PaymentRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Payment, error) {
	return scanPayment(tx.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		FOR UPDATE
	`, id))
}

func (r PaymentRepository) UpdateStatusTx(tx *sql.Tx, id int64, status, providerPaymentID string) error {
	_, err := tx.Exec(`
		UPDATE payments SET status = ?, provider_payment_id = ? WHERE id = ?
	`, status, providerPaymentID, id)
	return err
}
