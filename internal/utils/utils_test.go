package utils

import (
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"08031112222":      "08031112222",
		"+2348031112222":   "08031112222",
		"234 803 111 2222": "08031112222",
		"0803-111-2222":    "08031112222",
		"":                 "",
		"abc":              "",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2025-01-10":           "2025-01-10",
		" 2025-01-10 ":         "2025-01-10",
		"2025-01-10T08:00:00Z": "2025-01-10",
	}
	for in, want := range cases {
		if got := NormalizeDate(in); got != want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2025-01-10", "08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 1, 10, 8, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Malformed unit time falls back to midnight instead of failing.
	got, err = CombineDateTime("2025-01-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("missing time should mean midnight, got %v", got)
	}

	if _, err := CombineDateTime("not-a-date", "08:00"); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2025, 1, 10, 13, 45, 12, 0, time.Local)
	if got := StartOfDay(at); got.Hour() != 0 || got.Day() != 10 {
		t.Errorf("StartOfDay = %v", got)
	}
	if got := EndOfDay(at); got.Hour() != 23 || got.Day() != 10 {
		t.Errorf("EndOfDay = %v", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  John   Doe "); got != "John Doe" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeSpace("   "); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestFormatNaira(t *testing.T) {
	if got := FormatNaira(15000); got != "NGN 15,000" {
		t.Errorf("got %q", got)
	}
}
