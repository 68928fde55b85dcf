package model

import (
	"encoding/json"
	"sort"
	"time"
)

// SearchResult is a Page or a Database.
type SearchResult interface {
	Entity
	isSearchResult()
}

// Page is a page, usually a database row.
// See: https://developers.notion.com/reference/page
type Page struct {
	ID             string
	Parent         Parent
	CreatedTime    time.Time
	LastEditedTime time.Time
	Archived       bool
	Properties     map[string]PropertyValue
	URL            string
}

func (Page) ObjectType() ObjectType { return ObjectPage }
func (Page) isSearchResult()        {}

// MarshalJSON writes the page in the API shape.
func (p Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"object":           ObjectPage,
		"id":               p.ID,
		"parent":           p.Parent,
		"created_time":     p.CreatedTime,
		"last_edited_time": p.LastEditedTime,
		"archived":         p.Archived,
		"properties":       p.Properties,
		"url":              p.URL,
	})
}

// Title returns the plain text of the page's title property.
func (p Page) Title() string {
	for _, name := range sortedKeys(p.Properties) {
		if t, ok := p.Properties[name].(TitleValue); ok {
			return PlainText(t.Title)
		}
	}
	return ""
}

// Database is a database and its property schema.
// See: https://developers.notion.com/reference/database
type Database struct {
	ID             string
	Parent         Parent
	CreatedTime    time.Time
	LastEditedTime time.Time
	Title          []RichText
	Properties     map[string]Property
}

func (Database) ObjectType() ObjectType { return ObjectDatabase }
func (Database) isSearchResult()        {}

// MarshalJSON writes the database in the API shape.
func (d Database) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"object":           ObjectDatabase,
		"id":               d.ID,
		"parent":           d.Parent,
		"created_time":     d.CreatedTime,
		"last_edited_time": d.LastEditedTime,
		"title":            d.Title,
		"properties":       d.Properties,
	})
}

// DecodePage decodes a page object.
func DecodePage(raw Raw) (Page, error) {
	p, err := decodePage(raw)
	if err != nil {
		return Page{}, err
	}
	return p, nil
}

// DecodeDatabase decodes a database object.
func DecodeDatabase(raw Raw) (Database, error) {
	d, err := decodeDatabase(raw)
	if err != nil {
		return Database{}, err
	}
	return d, nil
}

var (
	pageParent     = parentDecoder(ParentTypeDatabase, ParentTypePage, ParentTypeWorkspace)
	databaseParent = parentDecoder(ParentTypePage, ParentTypeWorkspace)
)

func decodePage(raw Raw) (Page, error) {
	f := fields(raw)
	var p Page
	var err error
	if err = f.expectTag("object", string(ObjectPage)); err != nil {
		return p, err
	}
	if p.ID, err = f.str("id"); err != nil {
		return p, err
	}
	if p.Parent, err = nested(f, "parent", pageParent); err != nil {
		return p, err
	}
	if p.CreatedTime, err = f.timestamp("created_time"); err != nil {
		return p, err
	}
	if p.LastEditedTime, err = f.timestamp("last_edited_time"); err != nil {
		return p, err
	}
	if p.Archived, err = f.boolean("archived"); err != nil {
		return p, err
	}
	if p.Properties, err = propertyMap(f, DecodePropertyValue); err != nil {
		return p, err
	}
	if p.URL, err = f.str("url"); err != nil {
		return p, err
	}
	if err = validateURL("url", p.URL); err != nil {
		return p, err
	}
	return p, nil
}

func decodeDatabase(raw Raw) (Database, error) {
	f := fields(raw)
	var d Database
	var err error
	if err = f.expectTag("object", string(ObjectDatabase)); err != nil {
		return d, err
	}
	if d.ID, err = f.str("id"); err != nil {
		return d, err
	}
	if d.Parent, err = nested(f, "parent", databaseParent); err != nil {
		return d, err
	}
	if d.CreatedTime, err = f.timestamp("created_time"); err != nil {
		return d, err
	}
	if d.LastEditedTime, err = f.timestamp("last_edited_time"); err != nil {
		return d, err
	}
	if d.Title, err = decodeRichTextList(f, "title"); err != nil {
		return d, err
	}
	if d.Properties, err = propertyMap(f, DecodeProperty); err != nil {
		return d, err
	}
	return d, nil
}

// propertyMap decodes the "properties" object. Keys are visited in sorted
// order so the reported error is stable.
func propertyMap[T any](f fields, dec Decoder[T]) (map[string]T, error) {
	props, err := f.object("properties")
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(props))
	for _, name := range sortedKeys(props) {
		m, ok := props[name].(map[string]any)
		if !ok {
			return nil, within(malformed(name, "expected object, got %s", jsonKind(props[name])), "properties")
		}
		v, err := dec(m)
		if err != nil {
			return nil, within(err, "properties/"+name)
		}
		out[name] = v
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
