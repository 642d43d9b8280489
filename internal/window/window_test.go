package window

import (
	"errors"
	"testing"
	"time"
)

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", s, err)
	}
	return &v
}

func TestToday(t *testing.T) {
	now := *at(t, "2024-03-10 14:30:00")
	w := Today(now)

	tests := []struct {
		name string
		when *time.Time
		want bool
	}{
		{"yesterday late", at(t, "2024-03-09 23:00:00"), false},
		{"just after midnight", at(t, "2024-03-10 00:00:01"), true},
		{"exactly midnight", at(t, "2024-03-10 00:00:00"), true},
		{"afternoon", at(t, "2024-03-10 15:00:00"), true},
		{"at upper bound", at(t, "2024-03-10 23:59:59"), false},
		{"no completion date", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.when); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.when, got, tt.want)
			}
		})
	}
}

func TestRolling(t *testing.T) {
	now := *at(t, "2024-03-10 14:30:00")
	w := Rolling(now, DefaultCycleWeeks)

	wantFrom := *at(t, "2024-01-28 00:00:00")
	wantTo := *at(t, "2024-03-10 23:59:59")
	if !w.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", w.From, wantFrom)
	}
	if !w.To.Equal(wantTo) {
		t.Errorf("To = %v, want %v", w.To, wantTo)
	}

	if got := Rolling(now, 0); !got.From.Equal(wantFrom) {
		t.Errorf("Rolling with zero weeks should use the default, got From = %v", got.From)
	}
	if got := Rolling(now, 1); !got.From.Equal(*at(t, "2024-03-03 00:00:00")) {
		t.Errorf("Rolling(1).From = %v", got.From)
	}
}

func TestExplicit(t *testing.T) {
	w, err := Explicit("2024-03-01", "2024-03-08", time.UTC)
	if err != nil {
		t.Fatalf("Explicit failed: %v", err)
	}

	if !w.Contains(at(t, "2024-03-01 00:00:00")) {
		t.Error("from bound should be inclusive")
	}
	if w.Contains(at(t, "2024-03-08 00:00:00")) {
		t.Error("to bound should be exclusive")
	}
	if w.Contains(at(t, "2024-02-29 23:59:59")) {
		t.Error("date before from should be excluded")
	}

	t.Run("rfc3339 bounds are not adjusted", func(t *testing.T) {
		w, err := Explicit("2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z", time.Local)
		if err != nil {
			t.Fatalf("Explicit failed: %v", err)
		}
		if !w.From.Equal(*at(t, "2024-03-01 10:00:00")) {
			t.Errorf("From = %v", w.From)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := Explicit("last tuesday", "2024-03-08", time.UTC)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("empty date", func(t *testing.T) {
		_, err := Explicit("2024-03-01", "", time.UTC)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("inverted range matches nothing", func(t *testing.T) {
		w, err := Explicit("2024-03-08", "2024-03-01", time.UTC)
		if err != nil {
			t.Fatalf("Explicit failed: %v", err)
		}
		for _, s := range []string{"2024-03-01 00:00:00", "2024-03-04 12:00:00", "2024-03-08 00:00:00"} {
			if w.Contains(at(t, s)) {
				t.Errorf("inverted window should not contain %s", s)
			}
		}
	})
}

func TestExplicitZones(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	t.Run("date-only bounds are UTC midnight", func(t *testing.T) {
		w, err := Explicit("2024-03-01", "2024-03-08", ny)
		if err != nil {
			t.Fatalf("Explicit failed: %v", err)
		}
		if !w.From.Equal(*at(t, "2024-03-01 00:00:00")) {
			t.Errorf("From = %v, want 2024-03-01 00:00:00 UTC", w.From)
		}
		if !w.To.Equal(*at(t, "2024-03-08 00:00:00")) {
			t.Errorf("To = %v, want 2024-03-08 00:00:00 UTC", w.To)
		}
		if !w.Contains(at(t, "2024-03-01 02:00:00")) {
			t.Error("task completed at 02:00 UTC on the from day should be included")
		}
		if w.Contains(at(t, "2024-03-08 02:00:00")) {
			t.Error("task completed after the to bound should be excluded")
		}
	})

	t.Run("zoneless date-times use the caller's location", func(t *testing.T) {
		w, err := Explicit("2024-03-01 09:00", "2024-03-01T17:00:00", ny)
		if err != nil {
			t.Fatalf("Explicit failed: %v", err)
		}
		if !w.From.Equal(*at(t, "2024-03-01 14:00:00")) {
			t.Errorf("From = %v, want 14:00 UTC", w.From)
		}
		if !w.To.Equal(*at(t, "2024-03-01 22:00:00")) {
			t.Errorf("To = %v, want 22:00 UTC", w.To)
		}
	})
}

func TestUnfiltered(t *testing.T) {
	w := Unfiltered()
	if !w.Contains(nil) {
		t.Error("unfiltered window should contain tasks without a completion date")
	}
	if !w.Contains(at(t, "1999-01-01 00:00:00")) {
		t.Error("unfiltered window should contain any date")
	}
	if w.String() != "unfiltered" {
		t.Errorf("String() = %q", w.String())
	}
}
