// Package output renders decoded Notion entities as JSON, YAML or text,
// optionally filtered through a jq or JSONPath expression.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|yaml)")
	}
}

// Printer writes values to w in one format.
type Printer struct {
	w      io.Writer
	format Format
}

func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Print renders data. A --query or --jsonpath in ctx is applied first; the
// filtered result is then written in the printer's format.
func (p *Printer) Print(ctx context.Context, data any) error {
	if data == nil {
		return nil
	}
	filtered, err := applyFilters(ctx, data)
	if err != nil {
		return err
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(filtered, CompactJSONFromContext(ctx))
	case FormatYAML:
		return p.printYAML(filtered)
	case FormatText:
		if filtered.applied {
			return p.printFilteredText(filtered.values)
		}
		return renderText(p.w, data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printJSON(f filterResult, compact bool) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	for _, v := range f.values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// printYAML goes through the generic JSON form so entities with custom
// MarshalJSON keep the API field names.
func (p *Printer) printYAML(f filterResult) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	for _, v := range f.values {
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		if err := enc.Encode(generic); err != nil {
			return err
		}
	}
	return enc.Close()
}

// printFilteredText prints scalars bare and everything else as compact JSON.
func (p *Printer) printFilteredText(values []any) error {
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			_, _ = fmt.Fprintln(p.w, "null")
		case string:
			_, _ = fmt.Fprintln(p.w, x)
		case bool, int, int64, float64:
			_, _ = fmt.Fprintln(p.w, x)
		default:
			b, err := json.Marshal(x)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(p.w, string(b))
		}
	}
	return nil
}
