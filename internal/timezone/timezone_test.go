package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	if got := Location("Not/AZone").String(); got != DefaultTimezone {
		t.Fatalf("expected %s, got %s", DefaultTimezone, got)
	}
	if got := Location("Europe/Lisbon").String(); got != "Europe/Lisbon" {
		t.Fatalf("expected Europe/Lisbon, got %s", got)
	}
	if IsValid("") {
		t.Fatalf("empty timezone must be invalid")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := Location(DefaultTimezone)
	in := time.Date(2026, 3, 2, 15, 45, 10, 5, loc)
	got := StartOfDay(in)
	if !got.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start of day %s", got)
	}
}
