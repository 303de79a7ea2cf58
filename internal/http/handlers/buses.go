package handlers

import (
	"net/http"

	intconfig "busbuddy/internal/config"
	"busbuddy/internal/http/middleware"
	"busbuddy/internal/repositories"
	"busbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/buses
// Operator publishes a bus with its route, stops and first schedule.
func PublishBus(c *gin.Context) {
	var req services.PublishBusInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.FleetService{
		DB:           intconfig.DB,
		BusRepo:      repositories.BusRepository{DB: intconfig.DB},
		RouteRepo:    repositories.RouteRepository{DB: intconfig.DB},
		ScheduleRepo: repositories.ScheduleRepository{DB: intconfig.DB},
		RequestID:    middleware.GetRequestID(c),
	}
	published, err := svc.PublishBus(middleware.UserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, published)
}

// GET /api/buses
func ListBuses(c *gin.Context) {
	repo := repositories.BusRepository{DB: intconfig.DB}
	buses, err := repo.ListByOperator(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(buses))
	for _, b := range buses {
		out = append(out, gin.H{
			"id":                  b.ID,
			"name":                b.Name,
			"registration_number": b.RegistrationNumber,
			"total_seats":         b.TotalSeats,
			"is_ac":               b.IsAC,
			"is_sleeper":          b.IsSleeper,
			"women_safe":          b.WomenSafe,
			"created_at":          b.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"buses": out})
}

// GET /api/buses/:id
func GetBus(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.BusRepository{DB: intconfig.DB}
	b, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                  b.ID,
		"name":                b.Name,
		"registration_number": b.RegistrationNumber,
		"total_seats":         b.TotalSeats,
		"is_ac":               b.IsAC,
		"is_sleeper":          b.IsSleeper,
		"women_safe":          b.WomenSafe,
		"created_at":          b.CreatedAt,
	})
}
