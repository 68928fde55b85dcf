package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func mustDecode[T any](t *testing.T, body string, dec model.Decoder[T]) T {
	t.Helper()
	raw, err := model.ParseJSON([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := dec(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

const userJSON = `{"object":"user","id":"u1","type":"person","name":"Ada","avatar_url":null,"person":{"email":"ada@example.com"}}`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPrint_JSON(t *testing.T) {
	user := mustDecode(t, userJSON, model.DecodeUser)

	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).Print(context.Background(), user); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"email": "ada@example.com"`) || !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented API-shaped JSON, got %s", out)
	}

	buf.Reset()
	ctx := WithCompactJSON(context.Background(), true)
	if err := NewPrinter(&buf, FormatJSON).Print(ctx, user); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected a single line, got %q", buf.String())
	}
}

func TestPrint_YAML(t *testing.T) {
	user := mustDecode(t, userJSON, model.DecodeUser)
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatYAML).Print(context.Background(), user); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "name: Ada") || !strings.Contains(buf.String(), "email: ada@example.com") {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}
}

func TestPrint_Query(t *testing.T) {
	list := model.List[model.User]{
		Object:  model.ObjectList,
		Results: []model.User{mustDecode(t, userJSON, model.DecodeUser)},
	}

	tests := []struct {
		name   string
		format Format
		query  string
		want   string
	}{
		{"text scalar", FormatText, ".results[].name", "Ada\n"},
		{"text object", FormatText, ".results[0].person", "{\"email\":\"ada@example.com\"}\n"},
		{"json", FormatJSON, ".has_more", "false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := WithQuery(context.Background(), tt.query)
			if err := NewPrinter(&buf, tt.format).Print(ctx, list); err != nil {
				t.Fatalf("Print: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrint_JSONPath(t *testing.T) {
	user := mustDecode(t, userJSON, model.DecodeUser)
	for _, path := range []string{"$.person.email", "person.email", ".person.email"} {
		var buf bytes.Buffer
		ctx := WithJSONPath(context.Background(), path)
		if err := NewPrinter(&buf, FormatText).Print(ctx, user); err != nil {
			t.Fatalf("Print(%q): %v", path, err)
		}
		if buf.String() != "ada@example.com\n" {
			t.Errorf("%q: got %q", path, buf.String())
		}
	}
}

func TestPrint_FilterErrors(t *testing.T) {
	user := mustDecode(t, userJSON, model.DecodeUser)
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"both", WithJSONPath(WithQuery(context.Background(), ".id"), "$.id")},
		{"bad jq", WithQuery(context.Background(), ".results[")},
		{"bad jsonpath", WithJSONPath(context.Background(), "$[?(")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPrinter(&bytes.Buffer{}, FormatJSON).Print(tt.ctx, user)
			if !clierrors.IsUserError(err) {
				t.Errorf("expected user error, got %v", err)
			}
		})
	}
}

func TestPrint_RuntimeQueryError(t *testing.T) {
	err := NewPrinter(&bytes.Buffer{}, FormatJSON).Print(
		WithQuery(context.Background(), `error("boom")`), map[string]any{"a": 1})
	if err == nil || !strings.Contains(err.Error(), "query error") {
		t.Errorf("expected query error, got %v", err)
	}
}

func TestPrint_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).Print(context.Background(), nil); err != nil || buf.Len() != 0 {
		t.Errorf("expected no output, got %q, %v", buf.String(), err)
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if FormatFromContext(ctx) != FormatText || QueryFromContext(ctx) != "" ||
		JSONPathFromContext(ctx) != "" || CompactJSONFromContext(ctx) {
		t.Error("unexpected defaults")
	}
	if FormatFromContext(WithFormat(ctx, FormatYAML)) != FormatYAML {
		t.Error("format not stored")
	}
}
