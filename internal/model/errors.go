package model

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// KindShapeMismatch means a discriminator is present but does not match the decoder invoked.
	KindShapeMismatch ErrorKind = iota + 1
	// KindMissingDiscriminator means the payload has no discriminator field to route on.
	KindMissingDiscriminator
	// KindUnsupportedVariant means the discriminator is not registered for its family.
	KindUnsupportedVariant
	// KindMissingField means a required field is absent.
	KindMissingField
	// KindMalformedValue means a field is present but has the wrong shape or type.
	KindMalformedValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindShapeMismatch:
		return "shape_mismatch"
	case KindMissingDiscriminator:
		return "missing_discriminator"
	case KindUnsupportedVariant:
		return "unsupported_variant"
	case KindMissingField:
		return "missing_field"
	case KindMalformedValue:
		return "malformed_value"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrShapeMismatch        = &DecodeError{Kind: KindShapeMismatch}
	ErrMissingDiscriminator = &DecodeError{Kind: KindMissingDiscriminator}
	ErrUnsupportedVariant   = &DecodeError{Kind: KindUnsupportedVariant}
	ErrMissingField         = &DecodeError{Kind: KindMissingField}
	ErrMalformedValue       = &DecodeError{Kind: KindMalformedValue}
)

// DecodeError reports why a response payload could not be turned into an entity.
type DecodeError struct {
	Kind ErrorKind
	// Path is the slash-separated location of the failing record relative to
	// the payload root, e.g. "results/1/paragraph/text/0". Empty at the root.
	Path string
	// Field names the offending field for missing/malformed/mismatch errors.
	Field string
	// Discriminator holds the tag value for unsupported or mismatched variants.
	Discriminator string
	Message       string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode error (")
	b.WriteString(e.Kind.String())
	b.WriteString(")")
	loc := e.location()
	if loc != "" {
		b.WriteString(" at ")
		b.WriteString(loc)
	}
	if e.Discriminator != "" {
		fmt.Fprintf(&b, " [%q]", e.Discriminator)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *DecodeError) location() string {
	switch {
	case e.Path == "":
		return e.Field
	case e.Field == "":
		return e.Path
	default:
		return e.Path + "/" + e.Field
	}
}

// Is matches any DecodeError of the same kind, so callers can write
// errors.Is(err, model.ErrMissingField).
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

func missingField(field string) error {
	return &DecodeError{Kind: KindMissingField, Field: field, Message: "required field is missing"}
}

func malformed(field, format string, args ...any) error {
	return &DecodeError{Kind: KindMalformedValue, Field: field, Message: fmt.Sprintf(format, args...)}
}

func shapeMismatch(field, got, want string) error {
	return &DecodeError{
		Kind:          KindShapeMismatch,
		Field:         field,
		Discriminator: got,
		Message:       fmt.Sprintf("expected %q", want),
	}
}

func missingDiscriminator(field string) error {
	return &DecodeError{Kind: KindMissingDiscriminator, Field: field, Message: "cannot determine variant"}
}

func unsupportedVariant(family Family, field, tag string) error {
	return &DecodeError{
		Kind:          KindUnsupportedVariant,
		Field:         field,
		Discriminator: tag,
		Message:       fmt.Sprintf("no %s decoder registered", family),
	}
}

// within prefixes the location of a nested DecodeError with seg. The original
// error is left untouched; other errors pass through.
func within(err error, seg string) error {
	de, ok := err.(*DecodeError)
	if !ok || seg == "" {
		return err
	}
	out := *de
	if out.Path == "" {
		out.Path = seg
	} else {
		out.Path = seg + "/" + out.Path
	}
	return &out
}
