package model

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateOnlyLayout = "2006-01-02"

// isoDateTime matches the ISO 8601 shapes the API emits: a zero-padded
// calendar date followed by a time of day.
var isoDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)

// DateRange is a start/end pair. A nil End means a single point in time.
type DateRange struct {
	Start    time.Time
	End      *time.Time
	TimeZone *string
	// DateOnly is set when the values carried no time-of-day component.
	DateOnly bool
}

func decodeDateRange(raw Raw) (DateRange, error) {
	f := fields(raw)
	var d DateRange

	start, err := f.str("start")
	if err != nil {
		return d, err
	}
	if d.Start, err = parseDate("start", start); err != nil {
		return d, err
	}
	d.DateOnly = isDateOnly(start)

	end, err := f.optStr("end")
	if err != nil {
		return d, err
	}
	if end != nil {
		t, err := parseDate("end", *end)
		if err != nil {
			return d, err
		}
		d.End = &t
		d.DateOnly = d.DateOnly && isDateOnly(*end)
	}

	if d.TimeZone, err = f.optStr("time_zone"); err != nil {
		return d, err
	}
	return d, nil
}

// nullableDate decodes a date range that the API may send as null.
func nullableDate(f fields, key string) (*DateRange, error) {
	if !f.present(key) {
		return nil, missingField(key)
	}
	if _, ok := f.value(key); !ok {
		return nil, nil
	}
	d, err := nested(f, key, decodeDateRange)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDate(field, s string) (time.Time, error) {
	if isDateOnly(s) {
		t, err := time.Parse(dateOnlyLayout, s)
		if err != nil {
			return time.Time{}, malformed(field, "invalid date %q", s)
		}
		return t, nil
	}
	if !isoDateTime.MatchString(s) {
		return time.Time{}, malformed(field, "invalid date %q", s)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, malformed(field, "invalid date %q", s)
	}
	return t, nil
}

func isDateOnly(s string) bool {
	return len(s) == len(dateOnlyLayout) && !strings.ContainsAny(s, "T: ")
}

func (d DateRange) format(t time.Time) string {
	if d.DateOnly {
		return t.Format(dateOnlyLayout)
	}
	return t.Format(time.RFC3339Nano)
}

// String renders "start" or "start → end" in the range's own precision.
func (d DateRange) String() string {
	if d.End == nil {
		return d.format(d.Start)
	}
	return d.format(d.Start) + " → " + d.format(*d.End)
}

// MarshalJSON writes the range back in the API shape.
func (d DateRange) MarshalJSON() ([]byte, error) {
	out := map[string]any{"start": d.format(d.Start), "end": nil}
	if d.End != nil {
		out["end"] = d.format(*d.End)
	}
	if d.TimeZone != nil {
		out["time_zone"] = *d.TimeZone
	}
	return json.Marshal(out)
}
