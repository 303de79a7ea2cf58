package handlers

import (
	"net/http"

	intconfig "busbuddy/internal/config"
	"busbuddy/internal/http/middleware"
	"busbuddy/internal/repositories"
	"busbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		DB:           intconfig.DB,
		ScheduleRepo: repositories.ScheduleRepository{DB: intconfig.DB},
		BookingRepo:  repositories.BookingRepository{DB: intconfig.DB},
		PaymentRepo:  repositories.PaymentRepository{DB: intconfig.DB},
		RequestID:    middleware.GetRequestID(c),
	}
}

type createBookingRequest struct {
	ScheduleID   int64    `json:"schedule_id"`
	Seats        int      `json:"seats"`
	PricePerSeat int64    `json:"price_per_seat"`
	SeatNumbers  []string `json:"seat_numbers"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, payment, err := bookingService(c).Reserve(
		req.ScheduleID, middleware.UserID(c), req.Seats, req.PricePerSeat, req.SeatNumbers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking_id":   booking.ID,
		"payment_id":   payment.ID,
		"reference":    payment.Reference,
		"total_amount": payment.Amount,
		"paid":         booking.Paid,
	})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	booking, payment, err := bookingService(c).GetDetail(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_id":     booking.ID,
		"schedule_id":    booking.ScheduleID,
		"seats":          booking.Seats,
		"seat_numbers":   booking.SeatNumbers,
		"amount":         booking.Amount,
		"paid":           booking.Paid,
		"cancelled":      booking.Cancelled,
		"created_at":     booking.CreatedAt,
		"payment_id":     payment.ID,
		"payment_status": payment.Status,
		"reference":      payment.Reference,
	})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	booking, err := bookingService(c).Cancel(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_id": booking.ID,
		"cancelled":  booking.Cancelled,
		"message":    "seats released",
	})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	// Scope the lookup to the caller before rendering anything.
	if _, _, err := bookingService(c).GetDetail(id, middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.DocsService{
		BookingRepo:  repositories.BookingRepository{DB: intconfig.DB},
		PaymentRepo:  repositories.PaymentRepository{DB: intconfig.DB},
		ScheduleRepo: repositories.ScheduleRepository{DB: intconfig.DB},
		RouteRepo:    repositories.RouteRepository{DB: intconfig.DB},
		BusRepo:      repositories.BusRepository{DB: intconfig.DB},
		RequestID:    middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
