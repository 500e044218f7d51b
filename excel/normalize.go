package excel

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days since this epoch, which already folds
// in the historical 1900 leap-year quirk for any modern date.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	reDateDash = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateSla  = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	reDateDot  = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
)

// NormalizeDate converts a raw date cell into YYYY-MM-DD. Numeric cells are
// treated as spreadsheet serials; recognized string layouts get their
// separators normalized; anything else passes through unmodified.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial == 0 {
			return ""
		}
		if serial < 0 {
			return s
		}
		return serialEpoch.AddDate(0, 0, int(math.Floor(serial))).Format("2006-01-02")
	}

	switch {
	case reDateDash.MatchString(s):
		return s
	case reDateSla.MatchString(s):
		return strings.ReplaceAll(s, "/", "-")
	case reDateDot.MatchString(s):
		return strings.ReplaceAll(s, ".", "-")
	}
	return s
}

// NormalizeTime converts a raw time cell into HH:MM. Numeric cells are
// day fractions; values >= 1 contribute only their fractional part. String
// cells are trimmed and passed through.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if v == 0 {
		return ""
	}

	frac := v
	if v >= 1 {
		frac = v - math.Floor(v)
	}
	totalMinutes := int(math.Round(frac * 24 * 60))
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// NormalizeNumber coerces a raw cell into a non-negative-by-convention hour
// value rounded to 2 decimal places. Empty or non-numeric input becomes 0.
func NormalizeNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return math.Round(v*100) / 100
}

// NormalizeText trims a free-text cell.
func NormalizeText(raw string) string {
	return strings.TrimSpace(raw)
}
