package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"busbuddy/internal/domain"
	"busbuddy/internal/domain/models"
	"busbuddy/internal/repositories"
	"busbuddy/internal/utils"
)

// SearchService answers trip searches: calendar filter first, then stop
// matching, then amenity filters, then availability scoring. Fully booked
// trips are dropped from the results, not merely flagged.
type SearchService struct {
	ScheduleRepo repositories.ScheduleRepository
	BookingRepo  repositories.BookingRepository
	RequestID    string
}

func (s SearchService) Search(q models.SearchQuery) ([]models.TripResult, error) {
	source := utils.NormalizeSpace(q.Source)
	destination := utils.NormalizeSpace(q.Destination)
	if source == "" {
		return nil, domain.ValidationError{Field: "source", Msg: "required"}
	}
	if destination == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "required"}
	}

	var filterDate time.Time
	hasDate := false
	if strings.TrimSpace(q.Date) != "" {
		d, err := utils.ParseDate(q.Date)
		if err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		filterDate = d
		hasDate = true
	}

	filterDay := ""
	if !hasDate && strings.TrimSpace(q.Day) != "" {
		filterDay = models.NormalizeWeekday(q.Day)
		if filterDay == "" {
			return nil, domain.ValidationError{Field: "day", Msg: "unknown weekday"}
		}
	}

	candidates, err := s.ScheduleRepo.ListCandidates()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load schedules", Err: err}
	}

	type hit struct {
		cand   repositories.TripCandidate
		seq    []string
		oi, di int
	}

	hits := []hit{}
	for _, c := range candidates {
		switch {
		case hasDate:
			if !c.Schedule.Calendar.RunsOn(filterDate) {
				continue
			}
		case filterDay != "":
			if !c.Schedule.Calendar.RunsOnDay(filterDay) {
				continue
			}
		}

		if !c.HasRoute {
			continue
		}
		seq := c.Route.StopSequence()
		oi, di, ok := models.MatchStops(seq, source, destination)
		if !ok {
			continue
		}

		if q.BusType == "AC" && !c.Bus.IsAC {
			continue
		}
		if q.BusType == "Non-AC" && c.Bus.IsAC {
			continue
		}
		if q.SleeperType == "Sleeper" && !c.Bus.IsSleeper {
			continue
		}
		if q.SleeperType == "Seater" && c.Bus.IsSleeper {
			continue
		}
		if q.WomenSafe && !c.Bus.WomenSafe {
			continue
		}

		hits = append(hits, hit{cand: c, seq: seq, oi: oi, di: di})
	}

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.cand.Schedule.ID)
	}
	committed, err := s.BookingRepo.CommittedBySchedule(ids)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load availability", Err: err}
	}

	results := []models.TripResult{}
	for _, h := range hits {
		remaining := h.cand.Bus.TotalSeats - committed[h.cand.Schedule.ID]
		if remaining <= 0 {
			continue
		}

		dep := utils.ClockOrMidnight(h.cand.Schedule.DepartureTime)
		arr := utils.ClockOrMidnight(h.cand.Schedule.ArrivalTime)
		elapsed, _ := utils.Duration(dep, arr)

		results = append(results, models.TripResult{
			ScheduleID:         h.cand.Schedule.ID,
			BusName:            h.cand.Bus.Name,
			RegistrationNumber: h.cand.Bus.RegistrationNumber,
			OriginStop:         h.seq[h.oi],
			DestinationStop:    h.seq[h.di],
			DepartureTime:      dep,
			ArrivalTime:        arr,
			Duration:           utils.FormatDuration(elapsed),
			Price:              utils.TripPrice(len(h.seq), h.cand.Bus.IsSleeper, h.cand.Bus.IsAC),
			RemainingSeats:     remaining,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].DepartureTime != results[j].DepartureTime {
			return results[i].DepartureTime < results[j].DepartureTime
		}
		return results[i].ScheduleID < results[j].ScheduleID
	})

	utils.LogEvent(s.RequestID, "search", "trips",
		fmt.Sprintf("source=%q destination=%q hits=%d", source, destination, len(results)))
	return results, nil
}
