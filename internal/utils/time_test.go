package utils

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		dep, arr string
		want     time.Duration
	}{
		{"08:00", "10:30", 2*time.Hour + 30*time.Minute},
		{"23:30", "00:15", 45 * time.Minute}, // overnight wrap
		{"10:00", "10:00", 0},
		{"22:00", "06:00", 8 * time.Hour},
	}
	for _, c := range cases {
		got, err := Duration(c.dep, c.arr)
		if err != nil {
			t.Fatalf("Duration(%q, %q): %v", c.dep, c.arr, err)
		}
		if got != c.want {
			t.Errorf("Duration(%q, %q) = %v, want %v", c.dep, c.arr, got, c.want)
		}
	}
	if _, err := Duration("not-a-time", "10:00"); err == nil {
		t.Fatalf("expected error for bad departure")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(2*time.Hour + 30*time.Minute); got != "2h 30m" {
		t.Errorf("got %q", got)
	}
	if got := FormatDuration(45 * time.Minute); got != "0h 45m" {
		t.Errorf("got %q", got)
	}
}

func TestClockOrMidnight(t *testing.T) {
	cases := map[string]string{
		"09:05":    "09:05",
		"09:05:30": "09:05",
		" 23:59 ":  "23:59",
		"25:99":    "00:00",
		"noonish":  "00:00",
		"":         "00:00",
	}
	for in, want := range cases {
		if got := ClockOrMidnight(in); got != want {
			t.Errorf("ClockOrMidnight(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-04")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "2025-06-04" {
		t.Errorf("round trip broke: %v", d)
	}
	if _, err := ParseDate("04-06-2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
