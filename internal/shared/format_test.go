package shared

import (
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1_000, "1k"},
		{1_200, "1.2k"},
		{1_299, "1.2k"},
		{45_600, "45.6k"},
		{999_999, "999.9k"},
		{1_000_000, "1M"},
		{1_200_000, "1.2M"},
		{2_500_000_000, "2.5B"},
		{-1_200, "-1.2k"},
	}

	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{42, "0:42"},
		{61, "1:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3723, "1:02:03"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Seconds", func(t *testing.T) {
		if got := Elapsed(start, start.Add(42*time.Second)); got != "42s" {
			t.Errorf("expected 42s, got %s", got)
		}
	})

	t.Run("Minutes", func(t *testing.T) {
		if got := Elapsed(start, start.Add(3*time.Minute+12*time.Second)); got != "3m12s" {
			t.Errorf("expected 3m12s, got %s", got)
		}
	})

	t.Run("Hours", func(t *testing.T) {
		if got := Elapsed(start, start.Add(time.Hour+4*time.Minute)); got != "1h04m" {
			t.Errorf("expected 1h04m, got %s", got)
		}
	})

	t.Run("Clock Skew", func(t *testing.T) {
		if got := Elapsed(start, start.Add(-time.Minute)); got != "0s" {
			t.Errorf("expected 0s for now before start, got %s", got)
		}
	})
}

func TestPercent(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{12, 10, 100},
		{3, 0, 0},
		{-1, 10, 0},
	}

	for _, tc := range cases {
		if got := Percent(tc.done, tc.total); got != tc.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tc.done, tc.total, got, tc.want)
		}
	}
}

func TestNormalizeHashtag(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"#FitTok", "fittok"},
		{"  #GymLife ", "gymlife"},
		{"dance", "dance"},
		{"#", ""},
	}

	for _, tc := range cases {
		if got := NormalizeHashtag(tc.in); got != tc.want {
			t.Errorf("NormalizeHashtag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateJSON(t *testing.T) {
	if err := ValidateJSON([]byte(`{"ok": true}`)); err != nil {
		t.Errorf("expected valid JSON, got %v", err)
	}

	if err := ValidateJSON([]byte(`{nope`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
