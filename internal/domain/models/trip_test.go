package models

import "testing"

func TestWindowOverlaps(t *testing.T) {
	base := Trip{Date: "2025-01-10", UnitTime: "08:00"}

	cases := []struct {
		date, unitTime string
		want           bool
	}{
		{"2025-01-10", "08:00", true},
		{"2025-01-10", "10:00", true},
		{"2025-01-10", "11:59", true},
		{"2025-01-10", "12:00", false},
		{"2025-01-10", "04:01", true},
		{"2025-01-10", "04:00", false},
		{"2025-01-11", "08:00", false},
	}
	for _, c := range cases {
		other := Trip{Date: c.date, UnitTime: c.unitTime}
		if got := base.WindowOverlaps(other); got != c.want {
			t.Errorf("08:00 vs %s %s: got %v, want %v", c.date, c.unitTime, got, c.want)
		}
		if got := other.WindowOverlaps(base); got != c.want {
			t.Errorf("overlap is not symmetric for %s %s", c.date, c.unitTime)
		}
	}
}

func TestIsBookable(t *testing.T) {
	for status, want := range map[TripStatus]bool{
		TripDraft:     false,
		TripPublished: true,
		TripLive:      true,
		TripCompleted: false,
		TripCancelled: false,
	} {
		if got := (Trip{Status: status}).IsBookable(); got != want {
			t.Errorf("IsBookable(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestParcelCeilingKg(t *testing.T) {
	if got := (Trip{}).ParcelCeilingKg(); got != DefaultParcelCapacityKg {
		t.Errorf("default ceiling: got %v", got)
	}
	if got := (Trip{ParcelCapacityKg: 250}).ParcelCeilingKg(); got != 250 {
		t.Errorf("explicit ceiling: got %v", got)
	}
}
