package model

import "sort"

// Family names a group of variants that share one discriminator and one registry.
type Family string

const (
	FamilyBlock          Family = "block"
	FamilyUser           Family = "user"
	FamilyPageOrDatabase Family = "page_or_database"

	// Closed families, matched with a switch instead of a registry.
	FamilyProperty      Family = "property"
	FamilyPropertyValue Family = "property_value"
	FamilyRichText      Family = "rich_text"
	FamilyMention       Family = "mention"
	FamilyParent        Family = "parent"
	FamilyFormula       Family = "formula"
	FamilyRollup        Family = "rollup"
)

// Registry maps discriminator values of one family to their decoders.
// Registries are populated during package initialisation and are read-only
// afterwards, so concurrent lookups need no locking.
type Registry[T any] struct {
	family   Family
	field    string
	decoders map[string]Decoder[T]
	// fallback, when set, decodes records whose tag is not registered.
	fallback Decoder[T]
}

func newRegistry[T any](family Family, field string) *Registry[T] {
	return &Registry[T]{family: family, field: field, decoders: map[string]Decoder[T]{}}
}

func (r *Registry[T]) register(tag string, dec Decoder[T]) *Registry[T] {
	if _, dup := r.decoders[tag]; dup {
		panic("model: duplicate " + string(r.family) + " decoder for " + tag)
	}
	r.decoders[tag] = dec
	return r
}

func (r *Registry[T]) withFallback(dec Decoder[T]) *Registry[T] {
	r.fallback = dec
	return r
}

// Family returns the family this registry serves.
func (r *Registry[T]) Family() Family { return r.family }

// Field returns the name of the discriminator field.
func (r *Registry[T]) Field() string { return r.field }

// Lookup returns the decoder registered for tag.
func (r *Registry[T]) Lookup(tag string) (Decoder[T], bool) {
	dec, ok := r.decoders[tag]
	return dec, ok
}

// Tags lists the registered discriminator values in sorted order.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.decoders))
	for tag := range r.decoders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ResolveStrict routes raw to its registered decoder. Unknown tags fail with
// an UnsupportedVariant error even when the family has a fallback.
func (r *Registry[T]) ResolveStrict(raw Raw) (T, error) {
	return r.resolve(raw, false)
}

// Resolve is ResolveStrict plus the family's degrade policy: unknown tags are
// handed to the fallback decoder when one exists.
func (r *Registry[T]) Resolve(raw Raw) (T, error) {
	return r.resolve(raw, true)
}

func (r *Registry[T]) resolve(raw Raw, allowFallback bool) (T, error) {
	var zero T
	tag, err := fields(raw).discriminator(r.field)
	if err != nil {
		return zero, err
	}
	if dec, ok := r.decoders[tag]; ok {
		return dec(raw)
	}
	if allowFallback && r.fallback != nil {
		return r.fallback(raw)
	}
	return zero, unsupportedVariant(r.family, r.field, tag)
}
