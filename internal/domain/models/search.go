package models

// SearchQuery carries already-validated trip search parameters.
type SearchQuery struct {
	Source      string
	Destination string
	Date        string // optional, "YYYY-MM-DD"
	Day         string // optional weekday token when no date given
	BusType     string // "AC", "Non-AC" or empty
	SleeperType string // "Sleeper", "Seater" or empty
	WomenSafe   bool
}

// TripResult is one search hit, enriched with derived attributes.
type TripResult struct {
	ScheduleID         int64  `json:"schedule_id"`
	BusName            string `json:"bus_name"`
	RegistrationNumber string `json:"registration_number"`
	OriginStop         string `json:"origin_stop"`
	DestinationStop    string `json:"destination_stop"`
	DepartureTime      string `json:"departure_time"`
	ArrivalTime        string `json:"arrival_time"`
	Duration           string `json:"duration"`
	Price              int64  `json:"price"`
	RemainingSeats     int    `json:"remaining_seats"`
}
