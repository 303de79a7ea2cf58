package utils

import "testing"

func TestTripPrice(t *testing.T) {
	cases := []struct {
		name      string
		stopCount int
		sleeper   bool
		ac        bool
		want      int64
	}{
		{"plain three stops", 3, false, false, 390},
		{"sleeper surcharge", 3, true, false, 507},
		{"ac surcharge", 3, false, true, 468},
		{"sleeper then ac compound", 3, true, true, 608}, // 390 * 1.3 * 1.2 = 608.4, truncated
		{"two stops", 2, false, false, 310},
		{"empty route falls back to base", 0, true, true, 150},
		{"negative treated as empty", -1, false, false, 150},
	}
	for _, c := range cases {
		if got := TripPrice(c.stopCount, c.sleeper, c.ac); got != c.want {
			t.Errorf("%s: TripPrice(%d, %v, %v) = %d, want %d",
				c.name, c.stopCount, c.sleeper, c.ac, got, c.want)
		}
	}
}
