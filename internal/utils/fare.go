package utils

const (
	baseFare    = 150
	perStopFare = 40
)

// TripPrice derives the display fare from route length and bus class.
// stopCount counts every waypoint including origin and destination. The
// sleeper surcharge applies before the AC surcharge, so the two compound.
// A route with no stops resolves to the base fare instead of failing.
func TripPrice(stopCount int, sleeper, ac bool) int64 {
	if stopCount <= 0 {
		return baseFare
	}

	price := float64(baseFare + 2*(perStopFare*stopCount))
	if sleeper {
		price += price * 0.3
	}
	if ac {
		price += price * 0.2
	}
	return int64(price)
}
