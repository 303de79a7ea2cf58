package services

import (
	"fmt"
	"sort"

	"busbuddy/internal/domain"
	"busbuddy/internal/repositories"
	"busbuddy/internal/utils"
)

// FrequentRoute counts how often a rider travelled one origin/destination
// pair.
type FrequentRoute struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

// DashboardService assembles the rider's booking history.
type DashboardService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
}

// UserBookings returns the rider's bookings newest first plus their five
// most travelled routes.
func (s DashboardService) UserBookings(userID int64) ([]repositories.UserTrip, []FrequentRoute, error) {
	if userID <= 0 {
		return nil, nil, domain.ValidationError{Field: "user_id", Msg: "required"}
	}

	trips, err := s.BookingRepo.ListByUserWithTrips(userID)
	if err != nil {
		return nil, nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}

	counts := map[[2]string]int{}
	order := [][2]string{}
	for _, t := range trips {
		if t.Origin == "" || t.Destination == "" {
			continue
		}
		key := [2]string{t.Origin, t.Destination}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}

	frequent := make([]FrequentRoute, 0, len(order))
	for _, key := range order {
		frequent = append(frequent, FrequentRoute{Origin: key[0], Destination: key[1], Count: counts[key]})
	}

	utils.LogEvent(s.RequestID, "dashboard", "user_bookings",
		fmt.Sprintf("user_id=%d bookings=%d", userID, len(trips)))
	return trips, frequent, nil
}
