package shared

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCount renders large counts the way the dashboard does: 1200000 -> "1.2M", 1200 -> "1.2k", 42 -> "42".
//
// One decimal place, trailing ".0" stripped. Negative values keep their sign.
func FormatCount(n int64) string {
	sign := ""
	v := float64(n)
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000_000:
		return sign + trimDecimal(v/1_000_000_000) + "B"
	case v >= 1_000_000:
		return sign + trimDecimal(v/1_000_000) + "M"
	case v >= 1_000:
		return sign + trimDecimal(v/1_000) + "k"
	default:
		return sign + strconv.FormatInt(int64(v), 10)
	}
}

func trimDecimal(v float64) string {
	// Truncate, don't round: 1,299,999 is "1.2M" not "1.3M"
	s := fmt.Sprintf("%.1f", math.Floor(v*10)/10)
	return strings.TrimSuffix(s, ".0")
}

// FormatDuration renders a duration in seconds as "M:SS" or "H:MM:SS".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Elapsed renders the wall time since start as a compact string for live views ("42s", "3m12s", "1h04m").
func Elapsed(start time.Time, now time.Time) string {
	if now.Before(start) {
		return "0s"
	}

	d := now.Sub(start).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// Percent computes done/total as a whole percentage clamped to [0, 100].
// A zero total reports 0.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	p := done * 100 / total
	if p > 100 {
		return 100
	}
	return p
}

// MarshalJSON marshals v, optionally indented.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ValidateJSON returns an error when data is not valid JSON.
func ValidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidInput, err)
	}
	return nil
}

// NormalizeHashtag lowercases a hashtag and strips a leading '#' and surrounding whitespace.
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	return strings.ToLower(tag)
}
