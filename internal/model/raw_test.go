package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func parse(t *testing.T, s string) Raw {
	t.Helper()
	raw, err := ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON(%s): %v", s, err)
	}
	return raw
}

func asDecodeError(t *testing.T, err error) *DecodeError {
	t.Helper()
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	return de
}

func TestParseJSON_RejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `null`, `"x"`} {
		if _, err := ParseJSON([]byte(body)); err == nil {
			t.Errorf("ParseJSON(%s): expected error", body)
		}
	}
	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Error("expected error for truncated body")
	}
}

func TestParseJSON_TrailingData(t *testing.T) {
	tests := []struct {
		body    string
		wantErr bool
	}{
		{`{"object":"list"}`, false},
		{"{\"object\":\"list\"}\n  ", false},
		{`{"object":"list"} {"x":1}`, true},
		{`{"object":"list"}]`, true},
		{`{"object":"list"} x`, true},
	}
	for _, tt := range tests {
		_, err := ParseJSON([]byte(tt.body))
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseJSON(%q): err = %v, wantErr %v", tt.body, err, tt.wantErr)
		}
	}
}

func TestParseJSON_KeepsNumbers(t *testing.T) {
	raw := parse(t, `{"a": 3, "b": 3.0, "c": 2.5}`)
	for key, wantInt := range map[string]bool{"a": true, "b": false, "c": false} {
		n, err := fields(raw).number(key)
		if err != nil {
			t.Fatalf("number(%s): %v", key, err)
		}
		if n.IsInteger() != wantInt {
			t.Errorf("%s: IsInteger = %v, want %v", key, n.IsInteger(), wantInt)
		}
	}
}

func TestNumber_String(t *testing.T) {
	tests := []struct {
		n    Number
		want string
	}{
		{IntNumber(42), "42"},
		{IntNumber(-7), "-7"},
		{FloatNumber(2.5), "2.5"},
		{FloatNumber(3), "3.0"},
		{FloatNumber(1e21), "1e+21"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		b, err := json.Marshal(tt.n)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(b) != tt.want {
			t.Errorf("MarshalJSON = %s, want %s", b, tt.want)
		}
	}
}

func TestNumber_Int64(t *testing.T) {
	if v, ok := IntNumber(9).Int64(); !ok || v != 9 {
		t.Errorf("Int64() = %d, %v", v, ok)
	}
	if _, ok := FloatNumber(9.5).Int64(); ok {
		t.Error("fractional number should not report an int64")
	}
	if FloatNumber(9.5).Float64() != 9.5 {
		t.Error("Float64 mismatch")
	}
}

func TestDateRange_OpenEnded(t *testing.T) {
	d, err := decodeDateRange(parse(t, `{"start": "2021-05-13"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.End != nil {
		t.Errorf("expected open-ended range, got end %v", d.End)
	}
	if !d.DateOnly {
		t.Error("expected date-only range")
	}
	if !d.Start.Equal(time.Date(2021, 5, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", d.Start)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"end":null,"start":"2021-05-13"}` {
		t.Errorf("unexpected JSON %s", b)
	}
}

func TestDateRange_ISOShapes(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2021-05-13", time.Date(2021, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"2021-05-13T10:00:00.000Z", time.Date(2021, 5, 13, 10, 0, 0, 0, time.UTC)},
		{"2021-05-13T10:00:00Z", time.Date(2021, 5, 13, 10, 0, 0, 0, time.UTC)},
		{"2021-05-13T12:00:00+02:00", time.Date(2021, 5, 13, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		d, err := decodeDateRange(parse(t, `{"start": "`+tt.in+`"}`))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
			continue
		}
		if !d.Start.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.in, d.Start, tt.want)
		}
	}
}

func TestDateRange_WithEndAndZone(t *testing.T) {
	d, err := decodeDateRange(parse(t, `{"start": "2021-05-13T09:00:00.000+02:00", "end": "2021-05-14T10:30:00Z", "time_zone": "Europe/Berlin"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DateOnly {
		t.Error("datetime range reported as date-only")
	}
	if d.End == nil || !d.End.Equal(time.Date(2021, 5, 14, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %v", d.End)
	}
	if !d.Start.Equal(time.Date(2021, 5, 13, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", d.Start)
	}
	if d.TimeZone == nil || *d.TimeZone != "Europe/Berlin" {
		t.Errorf("unexpected time zone %v", d.TimeZone)
	}
}

func TestDateRange_Malformed(t *testing.T) {
	for _, start := range []string{"not a date", "May 8, 2009", "2021-1-1", "2021/05/13", "13.05.2021", "2021-05-13 10:00:00", "2021-02-30"} {
		_, err := decodeDateRange(parse(t, `{"start": "`+start+`"}`))
		if !errors.Is(err, ErrMalformedValue) {
			t.Errorf("start %q: expected malformed value, got %v", start, err)
			continue
		}
		if de := asDecodeError(t, err); de.Field != "start" {
			t.Errorf("start %q: expected field start, got %q", start, de.Field)
		}
	}

	_, err := decodeDateRange(parse(t, `{"end": "2021-05-13"}`))
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field, got %v", err)
	}
}

func TestDecodeError_Message(t *testing.T) {
	err := within(within(missingField("id"), "paragraph/children/0"), "results/2")
	want := `decode error (missing_field) at results/2/paragraph/children/0/id: required field is missing`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrMissingField) || errors.Is(err, ErrMalformedValue) {
		t.Error("errors.Is should match on kind only")
	}
}

func TestWithin_LeavesOriginalUntouched(t *testing.T) {
	orig := missingField("id")
	_ = within(orig, "results/0")
	if de := orig.(*DecodeError); de.Path != "" {
		t.Errorf("original error mutated: path %q", de.Path)
	}
	plain := errors.New("boom")
	if within(plain, "x") != plain {
		t.Error("non-decode errors should pass through")
	}
}
