package model

// List is one page of a paginated collection.
// See: https://developers.notion.com/reference/pagination
type List[T any] struct {
	Object     ObjectType `json:"object"`
	Results    []T        `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor"`
}

// DecodeList decodes a list envelope, applying dec to every result in order.
// Any failing element fails the whole list.
func DecodeList[T any](raw Raw, dec Decoder[T]) (List[T], error) {
	f := fields(raw)
	l := List[T]{Object: ObjectList}
	if err := f.expectTag("object", string(ObjectList)); err != nil {
		return List[T]{}, err
	}
	hasMore, err := f.boolean("has_more")
	if err != nil {
		return List[T]{}, err
	}
	cursor, err := f.optStr("next_cursor")
	if err != nil {
		return List[T]{}, err
	}
	switch {
	case hasMore && (cursor == nil || *cursor == ""):
		return List[T]{}, malformed("next_cursor", "has_more is true but next_cursor is missing")
	case !hasMore && cursor != nil:
		return List[T]{}, malformed("next_cursor", "has_more is false but next_cursor is set")
	}
	results, err := listOf(f, "results", dec)
	if err != nil {
		return List[T]{}, err
	}
	l.Results, l.HasMore, l.NextCursor = results, hasMore, cursor
	return l, nil
}
