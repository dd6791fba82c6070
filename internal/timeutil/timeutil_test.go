package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
	if _, err := ParseDate("01/02/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestFormatDateIn(t *testing.T) {
	eastern := time.FixedZone("ET", -4*60*60)
	kickoff := time.Date(2025, 8, 31, 1, 30, 0, 0, time.UTC)
	if got := FormatDateIn(kickoff, eastern); got != "2025-08-30" {
		t.Fatalf("expected late kickoff to land on the local date, got %s", got)
	}
}

func TestParseDateInAndMidday(t *testing.T) {
	loc := time.FixedZone("CT", -5*60*60)
	day, err := ParseDateIn("2025-08-30", loc)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	noon := Midday(day)
	if noon.Hour() != 12 || noon.Day() != 30 || noon.Location() != loc {
		t.Fatalf("unexpected midday %s", noon)
	}
}

func TestLoadLocationFallsBack(t *testing.T) {
	if got := LoadLocation("Not/AZone", time.UTC); got != time.UTC {
		t.Fatalf("expected fallback, got %s", got)
	}
}
