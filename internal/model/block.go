package model

import (
	"encoding/json"
	"time"
)

// BlockType discriminates blocks.
type BlockType string

const (
	BlockTypeParagraph        BlockType = "paragraph"
	BlockTypeHeading1         BlockType = "heading_1"
	BlockTypeHeading2         BlockType = "heading_2"
	BlockTypeHeading3         BlockType = "heading_3"
	BlockTypeBulletedListItem BlockType = "bulleted_list_item"
	BlockTypeNumberedListItem BlockType = "numbered_list_item"
	BlockTypeToDo             BlockType = "to_do"
	BlockTypeToggle           BlockType = "toggle"
	BlockTypeChildPage        BlockType = "child_page"
	BlockTypeUnsupported      BlockType = "unsupported"
)

// Block is one of the block variants below. Use a type switch to handle
// each kind; UnsupportedBlock covers types this package does not model.
// See: https://developers.notion.com/reference/block
type Block interface {
	Entity
	Base() BlockCommon
	isBlock()
}

// BlockCommon holds the fields shared by every block.
type BlockCommon struct {
	Object         ObjectType `json:"object"`
	ID             string     `json:"id"`
	Type           BlockType  `json:"type"`
	CreatedTime    time.Time  `json:"created_time"`
	LastEditedTime time.Time  `json:"last_edited_time"`
	HasChildren    bool       `json:"has_children"`
}

func (c BlockCommon) Base() BlockCommon    { return c }
func (BlockCommon) ObjectType() ObjectType { return ObjectBlock }
func (BlockCommon) isBlock()               {}

func (c BlockCommon) fieldMap() map[string]any {
	return map[string]any{
		"object":           ObjectBlock,
		"id":               c.ID,
		"type":             c.Type,
		"created_time":     c.CreatedTime,
		"last_edited_time": c.LastEditedTime,
		"has_children":     c.HasChildren,
	}
}

// TextContent is the content of blocks made of rich text plus optional
// nested blocks.
type TextContent struct {
	Text     []RichText `json:"text"`
	Children []Block    `json:"children,omitempty"`
}

type ParagraphBlock struct {
	BlockCommon
	Paragraph TextContent `json:"paragraph"`
}

// HeadingBlock is a heading_1, heading_2 or heading_3 block. Headings never
// have children.
type HeadingBlock struct {
	BlockCommon
	Level   int     `json:"-"`
	Heading Heading `json:"-"`
}

type Heading struct {
	Text []RichText `json:"text"`
}

// MarshalJSON nests the heading under its level-specific key.
func (b HeadingBlock) MarshalJSON() ([]byte, error) {
	m := b.fieldMap()
	m[string(b.Type)] = b.Heading
	return json.Marshal(m)
}

type BulletedListItemBlock struct {
	BlockCommon
	BulletedListItem TextContent `json:"bulleted_list_item"`
}

type NumberedListItemBlock struct {
	BlockCommon
	NumberedListItem TextContent `json:"numbered_list_item"`
}

type ToDoBlock struct {
	BlockCommon
	ToDo ToDo `json:"to_do"`
}

type ToDo struct {
	Text     []RichText `json:"text"`
	Checked  bool       `json:"checked"`
	Children []Block    `json:"children,omitempty"`
}

type ToggleBlock struct {
	BlockCommon
	Toggle TextContent `json:"toggle"`
}

type ChildPageBlock struct {
	BlockCommon
	ChildPage ChildPage `json:"child_page"`
}

type ChildPage struct {
	Title string `json:"title"`
}

// UnsupportedBlock is the placeholder for block types without a decoder.
// Type keeps the tag the server sent.
type UnsupportedBlock struct {
	BlockCommon
}

// NestsChildren reports whether blocks of type t carry their child blocks
// inline under "<type>.children".
func NestsChildren(t BlockType) bool {
	switch t {
	case BlockTypeParagraph, BlockTypeBulletedListItem, BlockTypeNumberedListItem,
		BlockTypeToDo, BlockTypeToggle:
		return true
	default:
		return false
	}
}

// ChildrenOf returns the nested blocks carried by b, if any.
func ChildrenOf(b Block) []Block {
	switch v := b.(type) {
	case ParagraphBlock:
		return v.Paragraph.Children
	case BulletedListItemBlock:
		return v.BulletedListItem.Children
	case NumberedListItemBlock:
		return v.NumberedListItem.Children
	case ToDoBlock:
		return v.ToDo.Children
	case ToggleBlock:
		return v.Toggle.Children
	default:
		return nil
	}
}

// TextOf returns the rich text of b, or nil for blocks without text.
func TextOf(b Block) []RichText {
	switch v := b.(type) {
	case ParagraphBlock:
		return v.Paragraph.Text
	case HeadingBlock:
		return v.Heading.Text
	case BulletedListItemBlock:
		return v.BulletedListItem.Text
	case NumberedListItemBlock:
		return v.NumberedListItem.Text
	case ToDoBlock:
		return v.ToDo.Text
	case ToggleBlock:
		return v.Toggle.Text
	default:
		return nil
	}
}

func decodeBlockCommon(f fields, want BlockType) (BlockCommon, error) {
	if err := f.expectTag("type", string(want)); err != nil {
		return BlockCommon{}, err
	}
	return decodeBlockFields(f, want, true)
}

func decodeBlockFields(f fields, typ BlockType, requireHasChildren bool) (BlockCommon, error) {
	c := BlockCommon{Object: ObjectBlock, Type: typ}
	var err error
	if err = f.expectObject(ObjectBlock); err != nil {
		return c, err
	}
	if c.ID, err = f.str("id"); err != nil {
		return c, err
	}
	if c.CreatedTime, err = f.timestamp("created_time"); err != nil {
		return c, err
	}
	if c.LastEditedTime, err = f.timestamp("last_edited_time"); err != nil {
		return c, err
	}
	if requireHasChildren {
		if c.HasChildren, err = f.boolean("has_children"); err != nil {
			return c, err
		}
	}
	return c, nil
}

func decodeTextContent(raw Raw) (TextContent, error) {
	f := fields(raw)
	var c TextContent
	var err error
	if c.Text, err = decodeRichTextList(f, "text"); err != nil {
		return c, err
	}
	if c.Children, err = optListOf(f, "children", DecodeBlock); err != nil {
		return c, err
	}
	return c, nil
}

func decodeParagraphBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeParagraph)
	if err != nil {
		return nil, err
	}
	content, err := nested(f, string(BlockTypeParagraph), decodeTextContent)
	if err != nil {
		return nil, err
	}
	return ParagraphBlock{BlockCommon: common, Paragraph: content}, nil
}

func decodeBulletedListItemBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeBulletedListItem)
	if err != nil {
		return nil, err
	}
	content, err := nested(f, string(BlockTypeBulletedListItem), decodeTextContent)
	if err != nil {
		return nil, err
	}
	return BulletedListItemBlock{BlockCommon: common, BulletedListItem: content}, nil
}

func decodeNumberedListItemBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeNumberedListItem)
	if err != nil {
		return nil, err
	}
	content, err := nested(f, string(BlockTypeNumberedListItem), decodeTextContent)
	if err != nil {
		return nil, err
	}
	return NumberedListItemBlock{BlockCommon: common, NumberedListItem: content}, nil
}

func decodeToggleBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeToggle)
	if err != nil {
		return nil, err
	}
	content, err := nested(f, string(BlockTypeToggle), decodeTextContent)
	if err != nil {
		return nil, err
	}
	return ToggleBlock{BlockCommon: common, Toggle: content}, nil
}

func decodeToDoBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeToDo)
	if err != nil {
		return nil, err
	}
	todo, err := nested(f, string(BlockTypeToDo), func(raw Raw) (ToDo, error) {
		content, err := decodeTextContent(raw)
		if err != nil {
			return ToDo{}, err
		}
		checked, err := fields(raw).boolean("checked")
		if err != nil {
			return ToDo{}, err
		}
		return ToDo{Text: content.Text, Checked: checked, Children: content.Children}, nil
	})
	if err != nil {
		return nil, err
	}
	return ToDoBlock{BlockCommon: common, ToDo: todo}, nil
}

func decodeChildPageBlock(raw Raw) (Block, error) {
	f := fields(raw)
	common, err := decodeBlockCommon(f, BlockTypeChildPage)
	if err != nil {
		return nil, err
	}
	page, err := nested(f, string(BlockTypeChildPage), func(raw Raw) (ChildPage, error) {
		title, err := fields(raw).str("title")
		return ChildPage{Title: title}, err
	})
	if err != nil {
		return nil, err
	}
	return ChildPageBlock{BlockCommon: common, ChildPage: page}, nil
}

// headingDecoder builds the decoder for heading_<level>. has_children is
// pinned to false: an absent value takes the default, true is rejected.
func headingDecoder(level int) Decoder[Block] {
	typ := BlockType("heading_" + string(rune('0'+level)))
	return func(raw Raw) (Block, error) {
		f := fields(raw)
		if err := f.expectTag("type", string(typ)); err != nil {
			return nil, err
		}
		common, err := decodeBlockFields(f, typ, false)
		if err != nil {
			return nil, err
		}
		if _, ok := f.value("has_children"); ok {
			has, err := f.boolean("has_children")
			if err != nil {
				return nil, err
			}
			if has {
				return nil, malformed("has_children", "%s blocks cannot have children", typ)
			}
		}
		heading, err := nested(f, string(typ), func(raw Raw) (Heading, error) {
			text, err := decodeRichTextList(fields(raw), "text")
			return Heading{Text: text}, err
		})
		if err != nil {
			return nil, err
		}
		return HeadingBlock{BlockCommon: common, Level: level, Heading: heading}, nil
	}
}

// decodeUnsupportedBlock keeps only the common fields. It serves both the
// "unsupported" tag and, as the family fallback, any unregistered tag.
func decodeUnsupportedBlock(raw Raw) (Block, error) {
	f := fields(raw)
	tag, err := f.discriminator("type")
	if err != nil {
		return nil, err
	}
	common, err := decodeBlockFields(f, BlockType(tag), true)
	if err != nil {
		return nil, err
	}
	return UnsupportedBlock{BlockCommon: common}, nil
}
