package handlers

import (
	"net/http"

	intconfig "busbuddy/internal/config"
	"busbuddy/internal/http/middleware"
	"busbuddy/internal/repositories"
	"busbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users/me/bookings
func MyBookings(c *gin.Context) {
	svc := services.DashboardService{
		BookingRepo: repositories.BookingRepository{DB: intconfig.DB},
		RequestID:   middleware.GetRequestID(c),
	}
	trips, frequent, err := svc.UserBookings(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(trips))
	for _, t := range trips {
		out = append(out, gin.H{
			"booking_id":     t.Booking.ID,
			"schedule_id":    t.Booking.ScheduleID,
			"origin":         t.Origin,
			"destination":    t.Destination,
			"departure_time": t.DepartureTime,
			"seats":          t.Booking.Seats,
			"amount":         t.Booking.Amount,
			"paid":           t.Booking.Paid,
			"cancelled":      t.Booking.Cancelled,
			"payment_status": t.PaymentStatus,
			"created_at":     t.Booking.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "frequent_routes": frequent})
}
