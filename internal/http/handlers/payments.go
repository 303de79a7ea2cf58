package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type confirmPaymentRequest struct {
	ProviderReference string `json:"provider_reference"`
}

// POST /api/payments/:id/confirm
// The payment provider callback lands here. Confirming twice is safe.
func ConfirmPayment(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req confirmPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	payment, err := bookingService(c).ConfirmPayment(id, req.ProviderReference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"status":     payment.Status,
		"amount":     payment.Amount,
	})
}

// POST /api/payments/:id/fail
func FailPayment(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}

	payment, err := bookingService(c).FailPayment(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"status":     payment.Status,
	})
}
