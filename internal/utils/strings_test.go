package utils

import (
	"reflect"
	"testing"
)

func TestSplitSeatList(t *testing.T) {
	got := SplitSeatList(" a1, b2 ;c3\nd4,,")
	want := []string{"A1", "B2", "C3", "D4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if len(SplitSeatList("")) != 0 {
		t.Fatalf("empty input should yield no seats")
	}
}

func TestJoinSeatList(t *testing.T) {
	if got := JoinSeatList([]string{" a1 ", "", "b2"}); got != "A1,B2" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Pune   Station \t "); got != "Pune Station" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:       "Rs 0",
		780:     "Rs 780",
		1500:    "Rs 1,500",
		1234567: "Rs 1,234,567",
		-390:    "-Rs 390",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}
