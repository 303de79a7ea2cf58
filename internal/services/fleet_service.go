package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/repositories"
	"busbuddy/internal/utils"
)

// FleetService lets an operator publish a bus together with its route,
// ordered stops and first schedule in one transaction.
type FleetService struct {
	DB           *sql.DB
	BusRepo      repositories.BusRepository
	RouteRepo    repositories.RouteRepository
	ScheduleRepo repositories.ScheduleRepository
	RequestID    string
}

type StopInput struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type PublishBusInput struct {
	Name               string      `json:"name"`
	RegistrationNumber string      `json:"registration_number"`
	TotalSeats         int         `json:"total_seats"`
	IsAC               bool        `json:"is_ac"`
	IsSleeper          bool        `json:"is_sleeper"`
	WomenSafe          bool        `json:"women_safe"`
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	Stops              []StopInput `json:"stops"`
	DepartureTime      string      `json:"departure_time"`
	ArrivalTime        string      `json:"arrival_time"`
	TripDate           string      `json:"trip_date"`
	Days               []string    `json:"days"`
}

type PublishedBus struct {
	BusID      int64 `json:"bus_id"`
	RouteID    int64 `json:"route_id"`
	ScheduleID int64 `json:"schedule_id"`
}

// PublishBus validates and stores the whole bundle. Stop times are parsed
// leniently (bad values become midnight); the schedule calendar must be
// either one date or a weekday set, never both, never neither.
func (s FleetService) PublishBus(operatorID int64, in PublishBusInput) (PublishedBus, error) {
	var out PublishedBus

	origin := utils.NormalizeSpace(in.Origin)
	destination := utils.NormalizeSpace(in.Destination)
	if origin == "" {
		return out, domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if destination == "" {
		return out, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if strings.EqualFold(origin, destination) {
		return out, domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	}

	hasDate := strings.TrimSpace(in.TripDate) != ""
	hasDays := len(in.Days) > 0
	if hasDate && hasDays {
		return out, domain.ValidationError{Field: "trip_date", Msg: "set either a date or weekdays, not both"}
	}
	if !hasDate && !hasDays {
		return out, domain.ValidationError{Field: "trip_date", Msg: "set a date or weekdays"}
	}

	var calendar models.Calendar
	if hasDate {
		d, err := utils.ParseDate(in.TripDate)
		if err != nil {
			return out, domain.ValidationError{Field: "trip_date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		calendar = models.DateBound(d)
	} else {
		calendar = models.Recurring(in.Days)
		if !calendar.Filterable() {
			return out, domain.ValidationError{Field: "days", Msg: "no valid weekdays"}
		}
	}

	name := utils.NormalizeSpace(in.Name)
	if name == "" {
		name = "Unnamed bus"
	}
	regNo := strings.TrimSpace(in.RegistrationNumber)
	if regNo == "" {
		regNo = fmt.Sprintf("REG%d", time.Now().Unix())
	}
	seats := in.TotalSeats
	if seats <= 0 {
		seats = 40
	}

	stops := make([]models.Stop, 0, len(in.Stops))
	for idx, st := range in.Stops {
		stopName := utils.NormalizeSpace(st.Name)
		if stopName == "" {
			continue
		}
		stops = append(stops, models.Stop{
			Name:  stopName,
			Time:  utils.ClockOrMidnight(st.Time),
			Order: idx,
		})
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return out, domain.InternalError{Msg: "failed to start publish", Err: err}
	}

	busID, err := s.BusRepo.InsertTx(tx, models.Bus{
		Name:               name,
		RegistrationNumber: regNo,
		TotalSeats:         seats,
		IsAC:               in.IsAC,
		IsSleeper:          in.IsSleeper,
		WomenSafe:          in.WomenSafe,
		OperatorID:         operatorID,
	})
	if err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "Duplicate entry") {
			return out, domain.ConflictError{Resource: "bus", Msg: "registration number already in use", Err: err}
		}
		return out, domain.InternalError{Msg: "failed to create bus", Err: err}
	}

	routeID, err := s.RouteRepo.InsertTx(tx, models.Route{
		BusID:       busID,
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		_ = tx.Rollback()
		return out, domain.InternalError{Msg: "failed to create route", Err: err}
	}

	if err := s.RouteRepo.InsertStopsTx(tx, routeID, stops); err != nil {
		_ = tx.Rollback()
		return out, domain.InternalError{Msg: "failed to create stops", Err: err}
	}

	scheduleID, err := s.ScheduleRepo.InsertTx(tx, models.Schedule{
		BusID:         busID,
		RouteID:       routeID,
		DepartureTime: utils.ClockOrMidnight(in.DepartureTime),
		ArrivalTime:   utils.ClockOrMidnight(in.ArrivalTime),
		Calendar:      calendar,
	})
	if err != nil {
		_ = tx.Rollback()
		return out, domain.InternalError{Msg: "failed to create schedule", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Msg: "failed to commit publish", Err: err}
	}

	utils.LogEvent(s.RequestID, "fleet", "publish_bus",
		fmt.Sprintf("bus_id=%d route_id=%d schedule_id=%d stops=%d", busID, routeID, scheduleID, len(stops)))
	return PublishedBus{BusID: busID, RouteID: routeID, ScheduleID: scheduleID}, nil
}
