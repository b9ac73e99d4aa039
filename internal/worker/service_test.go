package worker

import (
	"testing"
	"time"
)

func TestParseDailyAt(t *testing.T) {
	hour, minute := parseDailyAt("18:00")
	if hour != 18 || minute != 0 {
		t.Fatalf("expected 18:00, got %02d:%02d", hour, minute)
	}
	hour, minute = parseDailyAt("07:45")
	if hour != 7 || minute != 45 {
		t.Fatalf("expected 07:45, got %02d:%02d", hour, minute)
	}
}

func TestParseDailyAtInvalidFallsBack(t *testing.T) {
	for _, raw := range []string{"", "25:00", "12:61", "noon", "12"} {
		hour, minute := parseDailyAt(raw)
		if hour != 18 || minute != 0 {
			t.Fatalf("expected fallback 18:00 for %q, got %02d:%02d", raw, hour, minute)
		}
	}
}

func TestNextDailyAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	next := nextDailyAt(now, 18, 0)
	if !next.Equal(time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected today 18:00, got %s", next)
	}

	late := time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC)
	next = nextDailyAt(late, 18, 0)
	if !next.Equal(time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected tomorrow 18:00, got %s", next)
	}
}
