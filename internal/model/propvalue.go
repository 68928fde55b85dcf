package model

import "time"

// PropertyValue is the value of one page property. The variant mirrors the
// database Property of the same type.
// See: https://developers.notion.com/reference/page#property-value-object
type PropertyValue interface {
	Base() PropertyValueCommon
	isPropertyValue()
}

// PropertyValueCommon holds the shared fields. ID is empty for values nested
// in a rollup array.
type PropertyValueCommon struct {
	ID   string       `json:"id,omitempty"`
	Type PropertyType `json:"type"`
}

func (c PropertyValueCommon) Base() PropertyValueCommon { return c }
func (PropertyValueCommon) isPropertyValue()            {}

type TitleValue struct {
	PropertyValueCommon
	Title []RichText `json:"title"`
}

type RichTextValue struct {
	PropertyValueCommon
	RichText []RichText `json:"rich_text"`
}

type NumberValue struct {
	PropertyValueCommon
	Number *Number `json:"number"`
}

type SelectValue struct {
	PropertyValueCommon
	Select *SelectOption `json:"select"`
}

type MultiSelectValue struct {
	PropertyValueCommon
	MultiSelect []SelectOption `json:"multi_select"`
}

type DateValue struct {
	PropertyValueCommon
	Date *DateRange `json:"date"`
}

type FormulaValue struct {
	PropertyValueCommon
	Formula FormulaResult `json:"formula"`
}

type RollupValue struct {
	PropertyValueCommon
	Rollup RollupResult `json:"rollup"`
}

type PeopleValue struct {
	PropertyValueCommon
	People []User `json:"people"`
}

type FilesValue struct {
	PropertyValueCommon
	Files []FileRef `json:"files"`
}

// FileRef names an attached file.
type FileRef struct {
	Name string `json:"name"`
}

type CheckboxValue struct {
	PropertyValueCommon
	Checkbox bool `json:"checkbox"`
}

type URLValue struct {
	PropertyValueCommon
	URL *string `json:"url"`
}

type EmailValue struct {
	PropertyValueCommon
	Email *string `json:"email"`
}

type PhoneNumberValue struct {
	PropertyValueCommon
	PhoneNumber *string `json:"phone_number"`
}

type CreatedTimeValue struct {
	PropertyValueCommon
	CreatedTime time.Time `json:"created_time"`
}

type CreatedByValue struct {
	PropertyValueCommon
	CreatedBy User `json:"created_by"`
}

type LastEditedTimeValue struct {
	PropertyValueCommon
	LastEditedTime time.Time `json:"last_edited_time"`
}

type LastEditedByValue struct {
	PropertyValueCommon
	LastEditedBy User `json:"last_edited_by"`
}

type RelationValue struct {
	PropertyValueCommon
	Relation []Reference `json:"relation"`
}

// FormulaResultType discriminates formula results.
type FormulaResultType string

const (
	FormulaResultString  FormulaResultType = "string"
	FormulaResultNumber  FormulaResultType = "number"
	FormulaResultBoolean FormulaResultType = "boolean"
	FormulaResultDate    FormulaResultType = "date"
)

// FormulaResult is the computed value of a formula property.
type FormulaResult interface {
	FormulaType() FormulaResultType
}

type StringFormula struct {
	Type   FormulaResultType `json:"type"`
	String *string           `json:"string"`
}

type NumberFormula struct {
	Type   FormulaResultType `json:"type"`
	Number *Number           `json:"number"`
}

type BooleanFormula struct {
	Type    FormulaResultType `json:"type"`
	Boolean bool              `json:"boolean"`
}

type DateFormula struct {
	Type FormulaResultType `json:"type"`
	Date *DateRange        `json:"date"`
}

func (StringFormula) FormulaType() FormulaResultType  { return FormulaResultString }
func (NumberFormula) FormulaType() FormulaResultType  { return FormulaResultNumber }
func (BooleanFormula) FormulaType() FormulaResultType { return FormulaResultBoolean }
func (DateFormula) FormulaType() FormulaResultType    { return FormulaResultDate }

// RollupResultType discriminates rollup results.
type RollupResultType string

const (
	RollupResultNumber RollupResultType = "number"
	RollupResultDate   RollupResultType = "date"
	RollupResultArray  RollupResultType = "array"
)

// RollupResult is the aggregated value of a rollup property.
type RollupResult interface {
	RollupType() RollupResultType
}

type NumberRollup struct {
	Type   RollupResultType `json:"type"`
	Number *Number          `json:"number"`
}

type DateRollup struct {
	Type RollupResultType `json:"type"`
	Date *DateRange       `json:"date"`
}

// ArrayRollup holds the rolled-up values themselves. They carry no id.
type ArrayRollup struct {
	Type  RollupResultType `json:"type"`
	Array []PropertyValue  `json:"array"`
}

func (NumberRollup) RollupType() RollupResultType { return RollupResultNumber }
func (DateRollup) RollupType() RollupResultType   { return RollupResultDate }
func (ArrayRollup) RollupType() RollupResultType  { return RollupResultArray }

// DecodePropertyValue decodes a page property value.
func DecodePropertyValue(raw Raw) (PropertyValue, error) {
	return decodePropertyValue(raw, true)
}

func decodeAnonymousPropertyValue(raw Raw) (PropertyValue, error) {
	return decodePropertyValue(raw, false)
}

func decodePropertyValue(raw Raw, requireID bool) (PropertyValue, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	c := PropertyValueCommon{Type: PropertyType(tag)}
	if requireID {
		if c.ID, err = f.str("id"); err != nil {
			return nil, err
		}
	} else if id, err := f.optStr("id"); err != nil {
		return nil, err
	} else if id != nil {
		c.ID = *id
	}

	v, err := decodeValuePayload(f, c, tag)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeValuePayload may return a partly filled value together with an error;
// decodePropertyValue discards it.
func decodeValuePayload(f fields, c PropertyValueCommon, tag string) (PropertyValue, error) {
	switch c.Type {
	case PropertyTypeTitle:
		text, err := decodeRichTextList(f, tag)
		return TitleValue{PropertyValueCommon: c, Title: text}, err
	case PropertyTypeRichText:
		text, err := decodeRichTextList(f, tag)
		return RichTextValue{PropertyValueCommon: c, RichText: text}, err
	case PropertyTypeNumber:
		n, err := f.nullableNumber(tag)
		return NumberValue{PropertyValueCommon: c, Number: n}, err
	case PropertyTypeSelect:
		opt, err := nullableNested(f, tag, decodeSelectOption)
		return SelectValue{PropertyValueCommon: c, Select: opt}, err
	case PropertyTypeMultiSelect:
		opts, err := listOf(f, tag, decodeSelectOption)
		return MultiSelectValue{PropertyValueCommon: c, MultiSelect: opts}, err
	case PropertyTypeDate:
		d, err := nullableDate(f, tag)
		return DateValue{PropertyValueCommon: c, Date: d}, err
	case PropertyTypeFormula:
		res, err := nested(f, tag, decodeFormulaResult)
		return FormulaValue{PropertyValueCommon: c, Formula: res}, err
	case PropertyTypeRollup:
		res, err := nested(f, tag, decodeRollupResult)
		return RollupValue{PropertyValueCommon: c, Rollup: res}, err
	case PropertyTypePeople:
		people, err := listOf(f, tag, DecodeUser)
		return PeopleValue{PropertyValueCommon: c, People: people}, err
	case PropertyTypeFiles:
		files, err := listOf(f, tag, decodeFileRef)
		return FilesValue{PropertyValueCommon: c, Files: files}, err
	case PropertyTypeCheckbox:
		b, err := f.boolean(tag)
		return CheckboxValue{PropertyValueCommon: c, Checkbox: b}, err
	case PropertyTypeURL:
		s, err := f.nullableStr(tag)
		return URLValue{PropertyValueCommon: c, URL: s}, err
	case PropertyTypeEmail:
		s, err := f.nullableStr(tag)
		return EmailValue{PropertyValueCommon: c, Email: s}, err
	case PropertyTypePhoneNumber:
		s, err := f.nullableStr(tag)
		return PhoneNumberValue{PropertyValueCommon: c, PhoneNumber: s}, err
	case PropertyTypeCreatedTime:
		t, err := f.timestamp(tag)
		return CreatedTimeValue{PropertyValueCommon: c, CreatedTime: t}, err
	case PropertyTypeCreatedBy:
		u, err := nested(f, tag, DecodeUser)
		return CreatedByValue{PropertyValueCommon: c, CreatedBy: u}, err
	case PropertyTypeLastEditedTime:
		t, err := f.timestamp(tag)
		return LastEditedTimeValue{PropertyValueCommon: c, LastEditedTime: t}, err
	case PropertyTypeLastEditedBy:
		u, err := nested(f, tag, DecodeUser)
		return LastEditedByValue{PropertyValueCommon: c, LastEditedBy: u}, err
	case PropertyTypeRelation:
		refs, err := listOf(f, tag, decodeReference)
		return RelationValue{PropertyValueCommon: c, Relation: refs}, err
	default:
		return nil, unsupportedVariant(FamilyPropertyValue, "type", tag)
	}
}

func decodeFileRef(raw Raw) (FileRef, error) {
	name, err := fields(raw).str("name")
	return FileRef{Name: name}, err
}

func decodeFormulaResult(raw Raw) (FormulaResult, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	typ := FormulaResultType(tag)
	switch typ {
	case FormulaResultString:
		s, err := f.nullableStr(tag)
		if err != nil {
			return nil, err
		}
		return StringFormula{Type: typ, String: s}, nil
	case FormulaResultNumber:
		n, err := f.nullableNumber(tag)
		if err != nil {
			return nil, err
		}
		return NumberFormula{Type: typ, Number: n}, nil
	case FormulaResultBoolean:
		b, err := f.boolean(tag)
		if err != nil {
			return nil, err
		}
		return BooleanFormula{Type: typ, Boolean: b}, nil
	case FormulaResultDate:
		d, err := nullableDate(f, tag)
		if err != nil {
			return nil, err
		}
		return DateFormula{Type: typ, Date: d}, nil
	default:
		return nil, unsupportedVariant(FamilyFormula, "type", tag)
	}
}

func decodeRollupResult(raw Raw) (RollupResult, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	typ := RollupResultType(tag)
	switch typ {
	case RollupResultNumber:
		n, err := f.nullableNumber(tag)
		if err != nil {
			return nil, err
		}
		return NumberRollup{Type: typ, Number: n}, nil
	case RollupResultDate:
		d, err := nullableDate(f, tag)
		if err != nil {
			return nil, err
		}
		return DateRollup{Type: typ, Date: d}, nil
	case RollupResultArray:
		vals, err := listOf(f, tag, decodeAnonymousPropertyValue)
		if err != nil {
			return nil, err
		}
		return ArrayRollup{Type: typ, Array: vals}, nil
	default:
		return nil, unsupportedVariant(FamilyRollup, "type", tag)
	}
}
