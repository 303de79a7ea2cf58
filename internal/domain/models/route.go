package models

import (
	"sort"
	"strings"
)

// Stop is one waypoint on a route. Order is dense, zero-based and unique
// within the route; insertion order defines travel direction.
type Stop struct {
	ID      int64
	RouteID int64
	Name    string
	Time    string // clock "HH:MM", lenient ("00:00" when unparsable)
	Order   int
}

// Route is an ordered journey owned by exactly one bus.
type Route struct {
	ID          int64
	BusID       int64
	Origin      string
	Destination string
	Stops       []Stop
}

// StopSequence returns origin, intermediate stops ordered by Order, then
// destination. This sequence is what stop matching operates on.
func (r Route) StopSequence() []string {
	seq := make([]string, 0, len(r.Stops)+2)
	seq = append(seq, r.Origin)
	stops := make([]Stop, len(r.Stops))
	copy(stops, r.Stops)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })
	for _, s := range stops {
		seq = append(seq, s.Name)
	}
	seq = append(seq, r.Destination)
	return seq
}

// RenumberStops rewrites Order so it is dense and strictly increasing from
// zero, preserving the current relative order. Call after every insert or
// reorder.
func RenumberStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i
	}
	return out
}

// MatchStops locates origin and destination queries inside a stop sequence.
// Matching is case-insensitive substring containment: origin index is the
// first stop containing the origin query, destination index is the first
// stop strictly after it containing the destination query. The scan order
// enforces travel direction; (C, A) never matches on a route A->B->C.
func MatchStops(seq []string, origin, destination string) (int, int, bool) {
	o := strings.ToLower(strings.TrimSpace(origin))
	d := strings.ToLower(strings.TrimSpace(destination))
	if o == "" || d == "" {
		return 0, 0, false
	}

	oi := -1
	for i, name := range seq {
		if strings.Contains(strings.ToLower(name), o) {
			oi = i
			break
		}
	}
	if oi < 0 {
		return 0, 0, false
	}

	for j := oi + 1; j < len(seq); j++ {
		if strings.Contains(strings.ToLower(seq[j]), d) {
			return oi, j, true
		}
	}
	return 0, 0, false
}
