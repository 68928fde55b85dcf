package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeList_Paragraph(t *testing.T) {
	raw := parse(t, `{"object":"list","results":[{"type":"paragraph","id":"a","created_time":"2021-01-01T00:00:00Z","last_edited_time":"2021-01-01T00:00:00Z","has_children":false,"paragraph":{"text":[]}}],"has_more":false,"next_cursor":null}`)

	list, err := DecodeList(raw, DecodeBlock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(list.Results))
	}
	p, ok := list.Results[0].(ParagraphBlock)
	if !ok {
		t.Fatalf("expected ParagraphBlock, got %T", list.Results[0])
	}
	if p.ID != "a" || len(p.Paragraph.Text) != 0 {
		t.Errorf("unexpected paragraph %+v", p)
	}
	if list.HasMore || list.NextCursor != nil {
		t.Errorf("unexpected pagination state %v %v", list.HasMore, list.NextCursor)
	}
}

func TestDecodeList_CursorInvariant(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"has_more without cursor", `{"object":"list","results":[],"has_more":true}`},
		{"has_more with null cursor", `{"object":"list","results":[],"has_more":true,"next_cursor":null}`},
		{"no more with cursor", `{"object":"list","results":[],"has_more":false,"next_cursor":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeList(parse(t, tt.payload), DecodeUser)
			if !errors.Is(err, ErrMalformedValue) {
				t.Fatalf("expected malformed value, got %v", err)
			}
			if de := asDecodeError(t, err); de.Field != "next_cursor" {
				t.Errorf("Field = %q", de.Field)
			}
		})
	}
}

func TestDecodeList_InvariantCheckedBeforeResults(t *testing.T) {
	_, err := DecodeList(parse(t, `{"object":"list","results":[{"nope":1}],"has_more":true}`), DecodeUser)
	if de := asDecodeError(t, err); de.Field != "next_cursor" {
		t.Errorf("expected the cursor violation, got %v", err)
	}
}

func TestDecodeList_Continuation(t *testing.T) {
	list, err := DecodeList(parse(t, `{"object":"list","results":[{"id":"u1","type":"bot","name":"x"}],"has_more":true,"next_cursor":"c2"}`), DecodeUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !list.HasMore || list.NextCursor == nil || *list.NextCursor != "c2" {
		t.Errorf("unexpected pagination state %v %v", list.HasMore, list.NextCursor)
	}
}

func TestDecodeList_NoPartialPages(t *testing.T) {
	users := `{"object":"list","has_more":false,"next_cursor":null,"results":[` +
		`{"id":"u1","type":"bot","name":"one"},` +
		`{"id":"u2","type":"alien","name":"two"},` +
		`{"id":"u3","type":"person","name":"three"}]}`
	list, err := DecodeList(parse(t, users), DecodeUser)
	if !errors.Is(err, ErrUnsupportedVariant) {
		t.Fatalf("expected unsupported variant, got %v", err)
	}
	if list.Results != nil {
		t.Errorf("partial results returned: %v", list.Results)
	}
	if de := asDecodeError(t, err); de.Path != "results/1" {
		t.Errorf("Path = %q, want results/1", de.Path)
	}

	blocks := `{"object":"list","has_more":false,"results":[` +
		blockJSON("paragraph", `{"text":[]}`, false) + `,` +
		`{"id":"b2","type":42,"created_time":"` + ts + `","last_edited_time":"` + ts + `","has_children":false},` +
		blockJSON("toggle", `{"text":[]}`, false) + `]}`
	bl, err := DecodeList(parse(t, blocks), DecodeBlock)
	if err == nil || bl.Results != nil {
		t.Fatalf("expected whole-page failure, got %v results and %v", len(bl.Results), err)
	}
	if !strings.Contains(err.Error(), "results/1") {
		t.Errorf("error does not locate element: %v", err)
	}
}

func TestDecodeList_Envelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"wrong object", `{"object":"block","results":[],"has_more":false}`, ErrShapeMismatch},
		{"missing object", `{"results":[],"has_more":false}`, ErrMissingDiscriminator},
		{"missing has_more", `{"object":"list","results":[]}`, ErrMissingField},
		{"missing results", `{"object":"list","has_more":false}`, ErrMissingField},
		{"results not array", `{"object":"list","results":{},"has_more":false}`, ErrMalformedValue},
		{"element not object", `{"object":"list","results":["x"],"has_more":false}`, ErrMalformedValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeList(parse(t, tt.payload), DecodeBlock)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
