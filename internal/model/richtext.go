package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RichTextType discriminates rich text spans.
type RichTextType string

const (
	RichTextTypeText     RichTextType = "text"
	RichTextTypeMention  RichTextType = "mention"
	RichTextTypeEquation RichTextType = "equation"
)

// RichText is a TextSpan, MentionSpan or EquationSpan.
// See: https://developers.notion.com/reference/rich-text
type RichText interface {
	Base() RichTextCommon
	isRichText()
}

// RichTextCommon holds the fields shared by every span.
type RichTextCommon struct {
	Type        RichTextType `json:"type"`
	PlainText   string       `json:"plain_text"`
	Href        *string      `json:"href"`
	Annotations Annotations  `json:"annotations"`
}

func (c RichTextCommon) Base() RichTextCommon { return c }
func (RichTextCommon) isRichText()            {}

// Annotations describe the styling of a span.
type Annotations struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Code          bool  `json:"code"`
	Color         Color `json:"color"`
}

// TextSpan is literal text with an optional link.
type TextSpan struct {
	RichTextCommon
	Text Text `json:"text"`
}

// Text is the payload of a text span.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link"`
}

// Link is an inline hyperlink.
type Link struct {
	URL string `json:"url"`
}

// MentionSpan references a user, page, database or date.
type MentionSpan struct {
	RichTextCommon
	Mention Mention `json:"mention"`
}

// EquationSpan is an inline KaTeX expression.
type EquationSpan struct {
	RichTextCommon
	Equation Equation `json:"equation"`
}

// Equation is the payload of an equation span.
type Equation struct {
	Expression string `json:"expression"`
}

// MentionType discriminates mentions.
type MentionType string

const (
	MentionTypeUser     MentionType = "user"
	MentionTypePage     MentionType = "page"
	MentionTypeDatabase MentionType = "database"
	MentionTypeDate     MentionType = "date"
)

// Mention is a UserMention, PageMention, DatabaseMention or DateMention.
type Mention interface {
	MentionType() MentionType
}

// Reference points at another object by id.
type Reference struct {
	ID string `json:"id"`
}

type UserMention struct {
	Type MentionType `json:"type"`
	User User        `json:"user"`
}

type PageMention struct {
	Type MentionType `json:"type"`
	Page Reference   `json:"page"`
}

type DatabaseMention struct {
	Type     MentionType `json:"type"`
	Database Reference   `json:"database"`
}

type DateMention struct {
	Type MentionType `json:"type"`
	Date *DateRange  `json:"date,omitempty"`
}

func (UserMention) MentionType() MentionType     { return MentionTypeUser }
func (PageMention) MentionType() MentionType     { return MentionTypePage }
func (DatabaseMention) MentionType() MentionType { return MentionTypeDatabase }
func (DateMention) MentionType() MentionType     { return MentionTypeDate }

// DecodeRichText decodes one rich text span. The span kinds form a closed set.
func DecodeRichText(raw Raw) (RichText, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	switch RichTextType(tag) {
	case RichTextTypeText, RichTextTypeMention, RichTextTypeEquation:
	default:
		return nil, unsupportedVariant(FamilyRichText, "type", tag)
	}
	common, err := decodeRichTextCommon(f, RichTextType(tag))
	if err != nil {
		return nil, err
	}
	switch RichTextType(tag) {
	case RichTextTypeText:
		text, err := nested(f, "text", decodeText)
		if err != nil {
			return nil, err
		}
		return TextSpan{RichTextCommon: common, Text: text}, nil
	case RichTextTypeMention:
		m, err := nested(f, "mention", decodeMention)
		if err != nil {
			return nil, err
		}
		return MentionSpan{RichTextCommon: common, Mention: m}, nil
	case RichTextTypeEquation:
		eq, err := nested(f, "equation", decodeEquation)
		if err != nil {
			return nil, err
		}
		return EquationSpan{RichTextCommon: common, Equation: eq}, nil
	default:
		return nil, unsupportedVariant(FamilyRichText, "type", tag)
	}
}

func decodeRichTextCommon(f fields, typ RichTextType) (RichTextCommon, error) {
	c := RichTextCommon{Type: typ}
	var err error
	if c.PlainText, err = f.str("plain_text"); err != nil {
		return c, err
	}
	if c.Href, err = f.optStr("href"); err != nil {
		return c, err
	}
	if c.Href != nil {
		if err := validateURL("href", *c.Href); err != nil {
			return c, err
		}
	}
	if c.Annotations, err = nested(f, "annotations", decodeAnnotations); err != nil {
		return c, err
	}
	return c, nil
}

func decodeAnnotations(raw Raw) (Annotations, error) {
	f := fields(raw)
	var a Annotations
	var err error
	if a.Bold, err = f.boolean("bold"); err != nil {
		return a, err
	}
	if a.Italic, err = f.boolean("italic"); err != nil {
		return a, err
	}
	if a.Strikethrough, err = f.boolean("strikethrough"); err != nil {
		return a, err
	}
	if a.Underline, err = f.boolean("underline"); err != nil {
		return a, err
	}
	if a.Code, err = f.boolean("code"); err != nil {
		return a, err
	}
	if a.Color, err = enumValue(f, "color", knownColors); err != nil {
		return a, err
	}
	return a, nil
}

func decodeText(raw Raw) (Text, error) {
	f := fields(raw)
	var t Text
	var err error
	if t.Content, err = f.str("content"); err != nil {
		return t, err
	}
	if _, ok := f.value("link"); ok {
		link, err := nested(f, "link", decodeLink)
		if err != nil {
			return t, err
		}
		t.Link = &link
	}
	return t, nil
}

func decodeLink(raw Raw) (Link, error) {
	f := fields(raw)
	u, err := f.str("url")
	if err != nil {
		return Link{}, err
	}
	if err := validateURL("url", u); err != nil {
		return Link{}, err
	}
	return Link{URL: u}, nil
}

func decodeEquation(raw Raw) (Equation, error) {
	expr, err := fields(raw).str("expression")
	return Equation{Expression: expr}, err
}

func decodeReference(raw Raw) (Reference, error) {
	id, err := fields(raw).str("id")
	return Reference{ID: id}, err
}

func decodeMention(raw Raw) (Mention, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	switch MentionType(tag) {
	case MentionTypeUser:
		u, err := nested(f, "user", DecodeUser)
		if err != nil {
			return nil, err
		}
		return UserMention{Type: MentionTypeUser, User: u}, nil
	case MentionTypePage:
		ref, err := nested(f, "page", decodeReference)
		if err != nil {
			return nil, err
		}
		return PageMention{Type: MentionTypePage, Page: ref}, nil
	case MentionTypeDatabase:
		ref, err := nested(f, "database", decodeReference)
		if err != nil {
			return nil, err
		}
		return DatabaseMention{Type: MentionTypeDatabase, Database: ref}, nil
	case MentionTypeDate:
		m := DateMention{Type: MentionTypeDate}
		if _, ok := f.value("date"); ok {
			d, err := nested(f, "date", decodeDateRange)
			if err != nil {
				return nil, err
			}
			m.Date = &d
		}
		return m, nil
	default:
		return nil, unsupportedVariant(FamilyMention, "type", tag)
	}
}

func decodeRichTextList(f fields, key string) ([]RichText, error) {
	return listOf(f, key, DecodeRichText)
}

func validateURL(field, u string) error {
	if err := validation.Validate(u, validation.Required, is.URL); err != nil {
		return malformed(field, "invalid URL %q: %v", u, err)
	}
	return nil
}

// PlainText concatenates the plain text of spans.
func PlainText(spans []RichText) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Base().PlainText)
	}
	return b.String()
}
