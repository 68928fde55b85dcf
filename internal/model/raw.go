package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"
)

// Raw is a JSON object as delivered by the transport: string keys, nested
// Raw / []any values and scalar leaves (string, json.Number, bool, nil).
type Raw = map[string]any

// Decoder turns one raw record into a typed value.
type Decoder[T any] func(raw Raw) (T, error)

// ParseJSON parses a response body into a Raw object. Numbers are kept as
// json.Number so integral and fractional values stay distinguishable.
func ParseJSON(data []byte) (Raw, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw Raw
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response body: %w", err)
	}
	if raw == nil {
		return nil, malformed("", "response body is not a JSON object")
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON response body: trailing data after object")
	}
	return raw, nil
}

// fields wraps a Raw record with typed, validating accessors.
type fields map[string]any

// value returns the value for key. Explicit null counts as absent.
func (f fields) value(key string) (any, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// present reports whether key exists, even when it holds null.
func (f fields) present(key string) bool {
	_, ok := f[key]
	return ok
}

func (f fields) str(key string) (string, error) {
	v, ok := f.value(key)
	if !ok {
		return "", missingField(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(key, "expected string, got %s", jsonKind(v))
	}
	return s, nil
}

func (f fields) optStr(key string) (*string, error) {
	if _, ok := f.value(key); !ok {
		return nil, nil
	}
	s, err := f.str(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// nullableStr requires key to be present but accepts null.
func (f fields) nullableStr(key string) (*string, error) {
	if !f.present(key) {
		return nil, missingField(key)
	}
	return f.optStr(key)
}

func (f fields) boolean(key string) (bool, error) {
	v, ok := f.value(key)
	if !ok {
		return false, missingField(key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, malformed(key, "expected boolean, got %s", jsonKind(v))
	}
	return b, nil
}

func (f fields) timestamp(key string) (time.Time, error) {
	s, err := f.str(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, malformed(key, "invalid timestamp %q", s)
	}
	return t, nil
}

func (f fields) object(key string) (fields, error) {
	v, ok := f.value(key)
	if !ok {
		return nil, missingField(key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, malformed(key, "expected object, got %s", jsonKind(v))
	}
	return fields(m), nil
}

func (f fields) optObject(key string) (fields, bool, error) {
	if _, ok := f.value(key); !ok {
		return nil, false, nil
	}
	o, err := f.object(key)
	return o, err == nil, err
}

func (f fields) array(key string) ([]any, error) {
	v, ok := f.value(key)
	if !ok {
		return nil, missingField(key)
	}
	a, ok := v.([]any)
	if !ok {
		return nil, malformed(key, "expected array, got %s", jsonKind(v))
	}
	return a, nil
}

func (f fields) optArray(key string) ([]any, bool, error) {
	if _, ok := f.value(key); !ok {
		return nil, false, nil
	}
	a, err := f.array(key)
	return a, err == nil, err
}

func (f fields) number(key string) (Number, error) {
	v, ok := f.value(key)
	if !ok {
		return Number{}, missingField(key)
	}
	n, err := numberFrom(v)
	if err != nil {
		return Number{}, malformed(key, "%v", err)
	}
	return n, nil
}

func (f fields) nullableNumber(key string) (*Number, error) {
	if !f.present(key) {
		return nil, missingField(key)
	}
	if _, ok := f.value(key); !ok {
		return nil, nil
	}
	n, err := f.number(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// discriminator reads the routing tag stored under key.
func (f fields) discriminator(key string) (string, error) {
	v, ok := f.value(key)
	if !ok {
		return "", missingDiscriminator(key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", malformed(key, "discriminator must be a non-empty string")
	}
	return s, nil
}

// expectTag re-validates that the discriminator under key equals want.
func (f fields) expectTag(key, want string) error {
	got, err := f.discriminator(key)
	if err != nil {
		return err
	}
	if got != want {
		return shapeMismatch(key, got, want)
	}
	return nil
}

// expectObject checks the optional "object" tag.
func (f fields) expectObject(want ObjectType) error {
	if _, ok := f.value("object"); !ok {
		return nil
	}
	return f.expectTag("object", string(want))
}

// emptyConfig validates a configuration record the API pins to {}.
func (f fields) emptyConfig(key string) error {
	o, ok, err := f.optObject(key)
	if err != nil || !ok {
		return err
	}
	if len(o) != 0 {
		return malformed(key, "expected empty configuration object")
	}
	return nil
}

// decodeEach applies dec to every element of items, failing on the first
// element that is not an object or does not decode. Errors carry seg/index.
func decodeEach[T any](items []any, seg string, dec Decoder[T]) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		loc := seg + "/" + strconv.Itoa(i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, within(malformed("", "expected object, got %s", jsonKind(item)), loc)
		}
		v, err := dec(m)
		if err != nil {
			return nil, within(err, loc)
		}
		out = append(out, v)
	}
	return out, nil
}

// listOf decodes the required array under key.
func listOf[T any](f fields, key string, dec Decoder[T]) ([]T, error) {
	items, err := f.array(key)
	if err != nil {
		return nil, err
	}
	return decodeEach(items, key, dec)
}

// optListOf decodes the optional array under key; absent yields nil.
func optListOf[T any](f fields, key string, dec Decoder[T]) ([]T, error) {
	items, ok, err := f.optArray(key)
	if err != nil || !ok {
		return nil, err
	}
	return decodeEach(items, key, dec)
}

// nested decodes the required object under key with dec.
func nested[T any](f fields, key string, dec Decoder[T]) (T, error) {
	var zero T
	o, err := f.object(key)
	if err != nil {
		return zero, err
	}
	v, err := dec(Raw(o))
	if err != nil {
		return zero, within(err, key)
	}
	return v, nil
}

// nullableNested is nested for objects the API may send as null. The key must
// still be present.
func nullableNested[T any](f fields, key string, dec Decoder[T]) (*T, error) {
	if !f.present(key) {
		return nil, missingField(key)
	}
	if _, ok := f.value(key); !ok {
		return nil, nil
	}
	v, err := nested(f, key, dec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
