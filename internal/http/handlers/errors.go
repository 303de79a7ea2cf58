package handlers

import (
	"net/http"

	"busbuddy/internal/domain"
	"busbuddy/internal/http/middleware"
	"busbuddy/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Capacity
// failures carry the remaining seat count so the UI can suggest a smaller
// request; consistency failures are alarmed, never silently swallowed.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsCapacity(err):
		capErr, _ := domain.AsCapacity(err)
		RespondError(c, http.StatusConflict, "capacity_error", err.Error(), gin.H{"remaining": capErr.Remaining})
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsConsistency(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "consistency_alarm", err.Error())
		RespondError(c, http.StatusInternalServerError, "consistency_error", "internal invariant violated", nil)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
