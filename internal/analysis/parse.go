package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AishaAlajmi/AutoDash/internal/dataset"
)

// Spreadsheet serial days counted from 1899-12-30; 25569 is the serial of 1970-01-01.
const (
	serialMin       = 20000
	serialMax       = 60000
	serialUnixDays  = 25569
	secondsPerDay   = 86400
	unixSecondsMin  = 1e9
	unixSecondsMax  = 32503680000
	unixMillisMin   = 1e12
	unixMillisMax   = 32503680000000
	dayKeyLayout    = "2006-01-02"
	millisPerSecond = 1000
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	time.RFC1123Z,
	time.RFC1123,
}

var (
	plainNumberRe   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	groupedNumberRe = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// toDate reports whether a cell is date-like. Native numbers count when they fall in
// the spreadsheet-serial, Unix-seconds or Unix-milliseconds ranges; strings must match
// one of the known layouts. Layouts without a zone are read as UTC.
func toDate(c dataset.Cell) (time.Time, bool) {
	switch c.Kind() {
	case dataset.KindDate:
		return c.Time(), true
	case dataset.KindNumber:
		return numericDate(c.Num())
	case dataset.KindString:
		return parseDateString(c.Str())
	}
	return time.Time{}, false
}

func numericDate(v float64) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, false
	}
	switch {
	case v >= serialMin && v <= serialMax:
		ms := (v - serialUnixDays) * secondsPerDay * millisPerSecond
		return time.UnixMilli(int64(math.Round(ms))).UTC(), true
	case v > unixSecondsMin && v < unixSecondsMax:
		return time.UnixMilli(int64(math.Round(v * millisPerSecond))).UTC(), true
	case v > unixMillisMin && v < unixMillisMax:
		return time.UnixMilli(int64(math.Round(v))).UTC(), true
	}
	return time.Time{}, false
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// toNumber accepts native numbers and numeric-looking strings ("12", "-3.5e2", "1,234.50").
// Booleans and dates are not numbers.
func toNumber(c dataset.Cell) (float64, bool) {
	switch c.Kind() {
	case dataset.KindNumber:
		v := c.Num()
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case dataset.KindString:
		s := strings.TrimSpace(c.Str())
		switch {
		case plainNumberRe.MatchString(s):
		case groupedNumberRe.MatchString(s):
			s = strings.ReplaceAll(s, ",", "")
		default:
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func dayKey(t time.Time) string { return t.UTC().Format(dayKeyLayout) }
