package handlers

import (
	"net/http"
	"strings"

	intconfig "busbuddy/internal/config"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/http/middleware"
	"busbuddy/internal/repositories"
	"busbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/search
func SearchTrips(c *gin.Context) {
	q := models.SearchQuery{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		Day:         c.Query("day"),
		BusType:     c.Query("bus_type"),
		SleeperType: c.Query("sleeper_type"),
		WomenSafe:   parseBool(c.Query("women_safe")),
	}

	svc := services.SearchService{
		ScheduleRepo: repositories.ScheduleRepository{DB: intconfig.DB},
		BookingRepo:  repositories.BookingRepository{DB: intconfig.DB},
		RequestID:    middleware.GetRequestID(c),
	}
	results, err := svc.Search(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": results, "count": len(results)})
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
