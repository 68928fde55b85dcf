package model

// PropertyType discriminates database properties and page property values.
type PropertyType string

const (
	PropertyTypeTitle          PropertyType = "title"
	PropertyTypeRichText       PropertyType = "rich_text"
	PropertyTypeNumber         PropertyType = "number"
	PropertyTypeSelect         PropertyType = "select"
	PropertyTypeMultiSelect    PropertyType = "multi_select"
	PropertyTypeDate           PropertyType = "date"
	PropertyTypePeople         PropertyType = "people"
	PropertyTypeFiles          PropertyType = "files"
	PropertyTypeCheckbox       PropertyType = "checkbox"
	PropertyTypeURL            PropertyType = "url"
	PropertyTypeEmail          PropertyType = "email"
	PropertyTypePhoneNumber    PropertyType = "phone_number"
	PropertyTypeFormula        PropertyType = "formula"
	PropertyTypeRelation       PropertyType = "relation"
	PropertyTypeRollup         PropertyType = "rollup"
	PropertyTypeCreatedTime    PropertyType = "created_time"
	PropertyTypeCreatedBy      PropertyType = "created_by"
	PropertyTypeLastEditedTime PropertyType = "last_edited_time"
	PropertyTypeLastEditedBy   PropertyType = "last_edited_by"
)

// Property is the schema of one database column.
// See: https://developers.notion.com/reference/database#database-property
type Property interface {
	Base() PropertyCommon
	isProperty()
}

type PropertyCommon struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type PropertyType `json:"type"`
}

func (c PropertyCommon) Base() PropertyCommon { return c }
func (PropertyCommon) isProperty()            {}

// Empty is the configuration of properties that have none. It encodes as {}.
type Empty struct{}

type TitleProperty struct {
	PropertyCommon
	Title Empty `json:"title"`
}

type RichTextProperty struct {
	PropertyCommon
	RichText Empty `json:"rich_text"`
}

type NumberProperty struct {
	PropertyCommon
	Number NumberConfig `json:"number"`
}

type NumberConfig struct {
	Format *NumberFormat `json:"format,omitempty"`
}

type SelectProperty struct {
	PropertyCommon
	Select SelectConfig `json:"select"`
}

type MultiSelectProperty struct {
	PropertyCommon
	MultiSelect SelectConfig `json:"multi_select"`
}

type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// SelectOption identifies an option by id, by name, or both.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color *Color `json:"color,omitempty"`
}

type DateProperty struct {
	PropertyCommon
	Date Empty `json:"date"`
}

type PeopleProperty struct {
	PropertyCommon
	People Empty `json:"people"`
}

type FilesProperty struct {
	PropertyCommon
	Files Empty `json:"files"`
}

type CheckboxProperty struct {
	PropertyCommon
	Checkbox Empty `json:"checkbox"`
}

type URLProperty struct {
	PropertyCommon
	URL Empty `json:"url"`
}

type EmailProperty struct {
	PropertyCommon
	Email Empty `json:"email"`
}

type PhoneNumberProperty struct {
	PropertyCommon
	PhoneNumber Empty `json:"phone_number"`
}

type FormulaProperty struct {
	PropertyCommon
	Formula FormulaConfig `json:"formula"`
}

type FormulaConfig struct {
	Expression string `json:"expression"`
}

type RelationProperty struct {
	PropertyCommon
	Relation RelationConfig `json:"relation"`
}

type RelationConfig struct {
	DatabaseID         string  `json:"database_id"`
	SyncedPropertyName *string `json:"synced_property_name,omitempty"`
	SyncedPropertyID   *string `json:"synced_property_id,omitempty"`
}

type RollupProperty struct {
	PropertyCommon
	Rollup RollupConfig `json:"rollup"`
}

type RollupConfig struct {
	RelationPropertyName string         `json:"relation_property_name"`
	RelationPropertyID   string         `json:"relation_property_id"`
	RollupPropertyName   string         `json:"rollup_property_name"`
	RollupPropertyID     string         `json:"rollup_property_id"`
	Function             RollupFunction `json:"function"`
}

type CreatedTimeProperty struct {
	PropertyCommon
	CreatedTime Empty `json:"created_time"`
}

type CreatedByProperty struct {
	PropertyCommon
	CreatedBy Empty `json:"created_by"`
}

type LastEditedTimeProperty struct {
	PropertyCommon
	LastEditedTime Empty `json:"last_edited_time"`
}

type LastEditedByProperty struct {
	PropertyCommon
	LastEditedBy Empty `json:"last_edited_by"`
}

// DecodeProperty decodes a database property schema.
func DecodeProperty(raw Raw) (Property, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	c := PropertyCommon{Type: PropertyType(tag)}
	if c.ID, err = f.str("id"); err != nil {
		return nil, err
	}
	if c.Name, err = f.str("name"); err != nil {
		return nil, err
	}
	p, err := decodePropertyConfig(f, c, tag)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func decodePropertyConfig(f fields, c PropertyCommon, tag string) (Property, error) {
	switch c.Type {
	case PropertyTypeTitle:
		return TitleProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeRichText:
		return RichTextProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeDate:
		return DateProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypePeople:
		return PeopleProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeFiles:
		return FilesProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeCheckbox:
		return CheckboxProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeURL:
		return URLProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeEmail:
		return EmailProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypePhoneNumber:
		return PhoneNumberProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeCreatedTime:
		return CreatedTimeProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeCreatedBy:
		return CreatedByProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeLastEditedTime:
		return LastEditedTimeProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeLastEditedBy:
		return LastEditedByProperty{PropertyCommon: c}, f.emptyConfig(tag)
	case PropertyTypeNumber:
		cfg, err := nested(f, tag, func(raw Raw) (NumberConfig, error) {
			format, err := optEnumValue(fields(raw), "format", knownNumberFormats)
			return NumberConfig{Format: format}, err
		})
		if err != nil {
			return nil, err
		}
		return NumberProperty{PropertyCommon: c, Number: cfg}, nil
	case PropertyTypeSelect:
		cfg, err := nested(f, tag, decodeSelectConfig)
		if err != nil {
			return nil, err
		}
		return SelectProperty{PropertyCommon: c, Select: cfg}, nil
	case PropertyTypeMultiSelect:
		cfg, err := nested(f, tag, decodeSelectConfig)
		if err != nil {
			return nil, err
		}
		return MultiSelectProperty{PropertyCommon: c, MultiSelect: cfg}, nil
	case PropertyTypeFormula:
		cfg, err := nested(f, tag, func(raw Raw) (FormulaConfig, error) {
			expr, err := fields(raw).str("expression")
			return FormulaConfig{Expression: expr}, err
		})
		if err != nil {
			return nil, err
		}
		return FormulaProperty{PropertyCommon: c, Formula: cfg}, nil
	case PropertyTypeRelation:
		cfg, err := nested(f, tag, decodeRelationConfig)
		if err != nil {
			return nil, err
		}
		return RelationProperty{PropertyCommon: c, Relation: cfg}, nil
	case PropertyTypeRollup:
		cfg, err := nested(f, tag, decodeRollupConfig)
		if err != nil {
			return nil, err
		}
		return RollupProperty{PropertyCommon: c, Rollup: cfg}, nil
	default:
		return nil, unsupportedVariant(FamilyProperty, "type", tag)
	}
}

func decodeSelectConfig(raw Raw) (SelectConfig, error) {
	opts, err := listOf(fields(raw), "options", decodeSelectOption)
	return SelectConfig{Options: opts}, err
}

func decodeSelectOption(raw Raw) (SelectOption, error) {
	f := fields(raw)
	var o SelectOption
	id, err := f.optStr("id")
	if err != nil {
		return o, err
	}
	name, err := f.optStr("name")
	if err != nil {
		return o, err
	}
	if id == nil && name == nil {
		return o, missingField("name")
	}
	if id != nil {
		o.ID = *id
	}
	if name != nil {
		o.Name = *name
	}
	if o.Color, err = optEnumValue(f, "color", knownColors); err != nil {
		return o, err
	}
	return o, nil
}

func decodeRelationConfig(raw Raw) (RelationConfig, error) {
	f := fields(raw)
	var r RelationConfig
	var err error
	if r.DatabaseID, err = f.str("database_id"); err != nil {
		return r, err
	}
	if r.SyncedPropertyName, err = f.optStr("synced_property_name"); err != nil {
		return r, err
	}
	if r.SyncedPropertyID, err = f.optStr("synced_property_id"); err != nil {
		return r, err
	}
	return r, nil
}

func decodeRollupConfig(raw Raw) (RollupConfig, error) {
	f := fields(raw)
	var r RollupConfig
	var err error
	if r.RelationPropertyName, err = f.str("relation_property_name"); err != nil {
		return r, err
	}
	if r.RelationPropertyID, err = f.str("relation_property_id"); err != nil {
		return r, err
	}
	if r.RollupPropertyName, err = f.str("rollup_property_name"); err != nil {
		return r, err
	}
	if r.RollupPropertyID, err = f.str("rollup_property_id"); err != nil {
		return r, err
	}
	if r.Function, err = enumValue(f, "function", knownRollupFunctions); err != nil {
		return r, err
	}
	return r, nil
}
