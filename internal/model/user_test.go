package model

import (
	"errors"
	"testing"
)

func TestDecodeUser_Person(t *testing.T) {
	u, err := DecodeUser(parse(t, `{"object":"user","id":"u1","type":"person","name":"Ada","avatar_url":null,"person":{"email":"ada@example.com"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := u.(PersonUser)
	if !ok {
		t.Fatalf("expected PersonUser, got %T", u)
	}
	if p.Name != "Ada" || p.AvatarURL != nil {
		t.Errorf("unexpected user %+v", p)
	}
	if p.Person == nil || p.Person.Email != "ada@example.com" {
		t.Errorf("unexpected person %+v", p.Person)
	}
}

func TestDecodeUser_PersonWithoutContact(t *testing.T) {
	u, err := DecodeUser(parse(t, `{"id":"u1","type":"person","name":"Ada"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.(PersonUser).Person != nil {
		t.Error("expected no person record")
	}
}

func TestDecodeUser_Bot(t *testing.T) {
	u, err := DecodeUser(parse(t, `{"object":"user","id":"b1","type":"bot","name":"Sync","avatar_url":"https://example.com/a.png","bot":{}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := u.(BotUser)
	if !ok {
		t.Fatalf("expected BotUser, got %T", u)
	}
	if b.AvatarURL == nil || *b.AvatarURL != "https://example.com/a.png" {
		t.Errorf("unexpected avatar %v", b.AvatarURL)
	}
	if b.ObjectType() != ObjectUser {
		t.Errorf("ObjectType() = %q", b.ObjectType())
	}
}

func TestDecodeUser_UnknownTypeFails(t *testing.T) {
	_, err := DecodeUser(parse(t, `{"object":"user","id":"g1","type":"guest","name":"Visitor"}`))
	if !errors.Is(err, ErrUnsupportedVariant) {
		t.Fatalf("expected unsupported variant, got %v", err)
	}
	de := asDecodeError(t, err)
	if de.Discriminator != "guest" || de.Field != "type" {
		t.Errorf("unexpected error %+v", de)
	}
}

func TestDecodeUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
		field   string
	}{
		{"missing name", `{"id":"u1","type":"person"}`, ErrMissingField, "name"},
		{"missing id", `{"type":"bot","name":"x"}`, ErrMissingField, "id"},
		{"null id", `{"id":null,"type":"bot","name":"x"}`, ErrMissingField, "id"},
		{"missing type", `{"id":"u1","name":"x"}`, ErrMissingDiscriminator, "type"},
		{"bad email", `{"id":"u1","type":"person","name":"x","person":{"email":"nope"}}`, ErrMalformedValue, "email"},
		{"missing email", `{"id":"u1","type":"person","name":"x","person":{}}`, ErrMissingField, "email"},
		{"wrong object", `{"object":"block","id":"u1","type":"bot","name":"x"}`, ErrShapeMismatch, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUser(parse(t, tt.payload))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if de := asDecodeError(t, err); de.Field != tt.field {
				t.Errorf("Field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestDecode_Family(t *testing.T) {
	const annotations = `"annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false,"color":"default"}`
	tests := []struct {
		family Family
		body   string
		check  func(v any) bool
	}{
		{FamilyUser, `{"id":"u1","type":"bot","name":"x"}`, func(v any) bool { _, ok := v.(BotUser); return ok }},
		{FamilyProperty, `{"id":"x","name":"n","type":"title","title":{}}`, func(v any) bool { _, ok := v.(TitleProperty); return ok }},
		{FamilyPropertyValue, `{"id":"title","type":"title","title":[]}`, func(v any) bool { _, ok := v.(TitleValue); return ok }},
		{FamilyRichText, `{"type":"equation","plain_text":"x","href":null,` + annotations + `,"equation":{"expression":"x"}}`, func(v any) bool { _, ok := v.(EquationSpan); return ok }},
		{FamilyParent, `{"type":"page_id","page_id":"p1"}`, func(v any) bool { p, ok := v.(PageParent); return ok && p.PageID == "p1" }},
	}
	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			v, err := Decode(parse(t, tt.body), tt.family)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(v) {
				t.Errorf("unexpected value %T %+v", v, v)
			}
		})
	}

	e, err := Decode(parse(t, `{"id":"u1","type":"bot","name":"x"}`), FamilyUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.(Entity).ObjectType() != ObjectUser {
		t.Errorf("ObjectType() = %q", e.(Entity).ObjectType())
	}

	_, err = Decode(Raw{}, Family("comment"))
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrUnsupportedVariant) || de.Discriminator != "comment" {
		t.Errorf("unknown family: got %v (%T)", err, err)
	}
	if _, err := Decode(Raw{"id": "x", "name": "n"}, FamilyProperty); !errors.Is(err, ErrMissingDiscriminator) {
		t.Errorf("property without type: got %v", err)
	}
}
