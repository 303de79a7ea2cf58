package services

import (
	"database/sql"
	"fmt"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/repositories"
	"busbuddy/internal/utils"

	"github.com/google/uuid"
)

const defaultProvider = "razorpay"

// BookingService owns the only contended write path in the system. Every
// reservation re-checks availability inside one transaction while holding
// the schedule row lock, so concurrent requests can never jointly oversell
// a bus.
type BookingService struct {
	DB           *sql.DB
	ScheduleRepo repositories.ScheduleRepository
	BookingRepo  repositories.BookingRepository
	PaymentRepo  repositories.PaymentRepository
	Provider     string
	RequestID    string
}

func (s BookingService) provider() string {
	if s.Provider != "" {
		return s.Provider
	}
	return defaultProvider
}

// Reserve creates a booking plus its payment placeholder against freshly
// re-read availability. Both rows commit together or not at all. On a
// capacity failure the returned error carries the current remaining count.
func (s BookingService) Reserve(scheduleID, userID int64, seats int, pricePerSeat int64, seatNumbers []string) (models.Booking, models.Payment, error) {
	var booking models.Booking
	var payment models.Payment

	if seats < 1 {
		return booking, payment, domain.ValidationError{Field: "seats", Msg: "must be at least 1"}
	}
	if pricePerSeat < 0 {
		return booking, payment, domain.ValidationError{Field: "price_per_seat", Msg: "must not be negative"}
	}
	if len(seatNumbers) > 0 && len(seatNumbers) != seats {
		return booking, payment, domain.ValidationError{Field: "seat_numbers", Msg: "count does not match seats"}
	}

	release := reservationLocks.Acquire(scheduleID)
	defer release()

	tx, err := s.DB.Begin()
	if err != nil {
		return booking, payment, domain.InternalError{Msg: "failed to start reservation", Err: err}
	}

	capacity, err := s.ScheduleRepo.CapacityForUpdate(tx, scheduleID)
	if err != nil {
		_ = tx.Rollback()
		return booking, payment, err
	}

	committed, err := s.BookingRepo.CommittedSeatsTx(tx, scheduleID)
	if err != nil {
		_ = tx.Rollback()
		return booking, payment, domain.InternalError{Msg: "failed to read availability", Err: err}
	}

	remaining := capacity - committed
	if remaining < 0 {
		remaining = 0
	}
	if seats > remaining {
		_ = tx.Rollback()
		return booking, payment, domain.CapacityError{ScheduleID: scheduleID, Requested: seats, Remaining: remaining}
	}

	booking = models.Booking{
		UserID:      userID,
		ScheduleID:  scheduleID,
		Seats:       seats,
		SeatNumbers: seatNumbers,
		Amount:      0,
		Paid:        false,
	}
	bookingID, err := s.BookingRepo.InsertTx(tx, booking)
	if err != nil {
		_ = tx.Rollback()
		return models.Booking{}, payment, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	booking.ID = bookingID

	payment = models.Payment{
		BookingID: bookingID,
		Provider:  s.provider(),
		Reference: uuid.NewString(),
		Amount:    int64(seats) * pricePerSeat,
		Status:    models.PaymentInitiated,
	}
	paymentID, err := s.PaymentRepo.InsertTx(tx, payment)
	if err != nil {
		_ = tx.Rollback()
		return models.Booking{}, models.Payment{}, domain.InternalError{Msg: "failed to create payment", Err: err}
	}
	payment.ID = paymentID

	if err := tx.Commit(); err != nil {
		return models.Booking{}, models.Payment{}, domain.InternalError{Msg: "failed to commit reservation", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "reserve",
		fmt.Sprintf("booking_id=%d schedule_id=%d seats=%d remaining_before=%d", bookingID, scheduleID, seats, remaining))
	return booking, payment, nil
}

// ConfirmPayment moves a payment to succeeded and marks its booking paid in
// the same transaction. Confirming an already-succeeded payment is a no-op
// success, never a double credit.
func (s BookingService) ConfirmPayment(paymentID int64, providerRef string) (models.Payment, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to start confirmation", Err: err}
	}

	p, err := s.PaymentRepo.GetForUpdateTx(tx, paymentID)
	if err != nil {
		_ = tx.Rollback()
		return models.Payment{}, err
	}

	switch p.Status {
	case models.PaymentSucceeded:
		_ = tx.Rollback()
		utils.LogEvent(s.RequestID, "booking", "confirm_noop", fmt.Sprintf("payment_id=%d", paymentID))
		return p, nil
	case models.PaymentFailed:
		_ = tx.Rollback()
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already failed"}
	}

	booking, err := s.BookingRepo.GetForUpdateTx(tx, p.BookingID)
	if err != nil {
		_ = tx.Rollback()
		if domain.IsNotFound(err) {
			// Payments are created in the same transaction as their
			// booking; a dangling payment means the ledger is broken.
			cerr := domain.ConsistencyError{Msg: fmt.Sprintf("payment %d references missing booking %d", paymentID, p.BookingID), Err: err}
			utils.LogEvent(s.RequestID, "booking", "consistency_alarm", cerr.Error())
			return models.Payment{}, cerr
		}
		return models.Payment{}, err
	}

	if err := s.PaymentRepo.UpdateStatusTx(tx, p.ID, models.PaymentSucceeded, providerRef); err != nil {
		_ = tx.Rollback()
		return models.Payment{}, domain.InternalError{Msg: "failed to update payment", Err: err}
	}
	if err := s.BookingRepo.MarkPaidTx(tx, booking.ID, p.Amount); err != nil {
		_ = tx.Rollback()
		return models.Payment{}, domain.InternalError{Msg: "failed to mark booking paid", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to commit confirmation", Err: err}
	}

	p.Status = models.PaymentSucceeded
	p.ProviderPaymentID = providerRef
	utils.LogEvent(s.RequestID, "booking", "confirm",
		fmt.Sprintf("payment_id=%d booking_id=%d amount=%d", p.ID, booking.ID, p.Amount))
	return p, nil
}

// FailPayment records a provider failure. Failing an already-failed payment
// is a no-op; a succeeded payment cannot move backwards.
func (s BookingService) FailPayment(paymentID int64) (models.Payment, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to start update", Err: err}
	}

	p, err := s.PaymentRepo.GetForUpdateTx(tx, paymentID)
	if err != nil {
		_ = tx.Rollback()
		return models.Payment{}, err
	}

	switch p.Status {
	case models.PaymentFailed:
		_ = tx.Rollback()
		return p, nil
	case models.PaymentSucceeded:
		_ = tx.Rollback()
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already succeeded"}
	}

	if err := s.PaymentRepo.UpdateStatusTx(tx, p.ID, models.PaymentFailed, p.ProviderPaymentID); err != nil {
		_ = tx.Rollback()
		return models.Payment{}, domain.InternalError{Msg: "failed to update payment", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to commit update", Err: err}
	}

	p.Status = models.PaymentFailed
	utils.LogEvent(s.RequestID, "booking", "payment_failed", fmt.Sprintf("payment_id=%d", p.ID))
	return p, nil
}

// Cancel soft-cancels a booking. This is the only operation that releases
// capacity, and it shows up in the very next availability read. Cancelling
// twice acknowledges without changing anything.
func (s BookingService) Cancel(bookingID, userID int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if userID != 0 && booking.UserID != userID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if booking.Cancelled {
		return booking, nil
	}

	if err := s.BookingRepo.MarkCancelled(bookingID); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	booking.Cancelled = true

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d schedule_id=%d seats_released=%d", booking.ID, booking.ScheduleID, booking.Seats))
	return booking, nil
}

// GetDetail returns a booking with its payment. A booking without a
// payment row violates the reservation invariant and is reported as a
// consistency failure, not a not-found.
func (s BookingService) GetDetail(bookingID, userID int64) (models.Booking, models.Payment, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, models.Payment{}, err
	}
	if userID != 0 && booking.UserID != userID {
		return models.Booking{}, models.Payment{}, domain.NotFoundError{Resource: "booking"}
	}

	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			cerr := domain.ConsistencyError{Msg: fmt.Sprintf("booking %d has no payment", bookingID), Err: err}
			utils.LogEvent(s.RequestID, "booking", "consistency_alarm", cerr.Error())
			return models.Booking{}, models.Payment{}, cerr
		}
		return models.Booking{}, models.Payment{}, err
	}
	return booking, payment, nil
}
