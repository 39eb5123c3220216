package daterange

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for report date parameters.
const DateLayout = "2006-01-02"

// defaultWindowDays is the window used when no explicit range is given.
const defaultWindowDays = 30

// epochStart is the sentinel lower bound used for all-time queries. Any
// order date in the store falls after it.
var epochStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Range represents a resolved reporting period. To always points at the
// last second of its day so BETWEEN-style queries include the whole day.
type Range struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	AllTime bool      `json:"is_all_time"`
}

// Resolve normalizes raw request parameters into a canonical Range.
//
// Rules:
//   - allTime wins over from/to and spans epoch start through today.
//   - Both empty: the last 30 days ending today.
//   - Missing from defaults to 30 days ago; missing to defaults to today.
//   - The to bound is extended to 23:59:59 of its day.
//
// Malformed date strings are rejected rather than passed through to the
// query layer.
func Resolve(from, to string, allTime bool, now time.Time) (Range, error) {
	if allTime {
		return Range{
			From:    epochStart,
			To:      endOfDay(now),
			AllTime: true,
		}, nil
	}

	if from == "" && to == "" {
		return Range{
			From: startOfDay(now.AddDate(0, 0, -defaultWindowDays)),
			To:   endOfDay(now),
		}, nil
	}

	var r Range
	if from == "" {
		r.From = startOfDay(now.AddDate(0, 0, -defaultWindowDays))
	} else {
		parsed, err := time.ParseInLocation(DateLayout, from, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid from date %q: expected YYYY-MM-DD", from)
		}
		r.From = parsed
	}

	if to == "" {
		r.To = endOfDay(now)
	} else {
		parsed, err := time.ParseInLocation(DateLayout, to, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid to date %q: expected YYYY-MM-DD", to)
		}
		r.To = endOfDay(parsed)
	}

	if r.From.After(r.To) {
		return Range{}, fmt.Errorf("invalid date range: from %s is after to %s",
			r.From.Format(DateLayout), r.To.Format(DateLayout))
	}

	return r, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
