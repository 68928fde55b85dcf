package model

// ParentType discriminates parent references.
type ParentType string

const (
	ParentTypeDatabase  ParentType = "database_id"
	ParentTypePage      ParentType = "page_id"
	ParentTypeWorkspace ParentType = "workspace"
)

// Parent tags the container that owns a page or database.
type Parent interface {
	ParentType() ParentType
}

type DatabaseParent struct {
	Type       ParentType `json:"type"`
	DatabaseID string     `json:"database_id"`
}

type PageParent struct {
	Type   ParentType `json:"type"`
	PageID string     `json:"page_id"`
}

type WorkspaceParent struct {
	Type      ParentType `json:"type"`
	Workspace bool       `json:"workspace"`
}

func (DatabaseParent) ParentType() ParentType  { return ParentTypeDatabase }
func (PageParent) ParentType() ParentType      { return ParentTypePage }
func (WorkspaceParent) ParentType() ParentType { return ParentTypeWorkspace }

// parentDecoder returns a decoder accepting only the listed parent kinds.
func parentDecoder(allowed ...ParentType) Decoder[Parent] {
	return func(raw Raw) (Parent, error) {
		f := fields(raw)
		tag, err := f.discriminator("type")
		if err != nil {
			return nil, err
		}
		typ := ParentType(tag)
		switch typ {
		case ParentTypeDatabase, ParentTypePage, ParentTypeWorkspace:
		default:
			return nil, unsupportedVariant(FamilyParent, "type", tag)
		}
		ok := false
		for _, a := range allowed {
			ok = ok || a == typ
		}
		if !ok {
			return nil, malformed("type", "parent of type %q is not allowed here", tag)
		}

		switch typ {
		case ParentTypeDatabase:
			id, err := f.str("database_id")
			if err != nil {
				return nil, err
			}
			return DatabaseParent{Type: typ, DatabaseID: id}, nil
		case ParentTypePage:
			id, err := f.str("page_id")
			if err != nil {
				return nil, err
			}
			return PageParent{Type: typ, PageID: id}, nil
		default:
			if _, present := f.value("workspace"); present {
				ws, err := f.boolean("workspace")
				if err != nil {
					return nil, err
				}
				if !ws {
					return nil, malformed("workspace", "workspace parent must be true")
				}
			}
			return WorkspaceParent{Type: typ, Workspace: true}, nil
		}
	}
}
