package model

// Entity is any top-level object returned by the API.
type Entity interface {
	ObjectType() ObjectType
}

var (
	blockRegistry          *Registry[Block]
	userRegistry           *Registry[User]
	pageOrDatabaseRegistry *Registry[SearchResult]
)

// Registries are built in init because block decoders recurse through
// blockRegistry, which a package-level initialiser cannot express.
func init() {
	blockRegistry = newRegistry[Block](FamilyBlock, "type").
		register(string(BlockTypeParagraph), decodeParagraphBlock).
		register(string(BlockTypeHeading1), headingDecoder(1)).
		register(string(BlockTypeHeading2), headingDecoder(2)).
		register(string(BlockTypeHeading3), headingDecoder(3)).
		register(string(BlockTypeBulletedListItem), decodeBulletedListItemBlock).
		register(string(BlockTypeNumberedListItem), decodeNumberedListItemBlock).
		register(string(BlockTypeToDo), decodeToDoBlock).
		register(string(BlockTypeToggle), decodeToggleBlock).
		register(string(BlockTypeChildPage), decodeChildPageBlock).
		register(string(BlockTypeUnsupported), decodeUnsupportedBlock).
		withFallback(decodeUnsupportedBlock)

	userRegistry = newRegistry[User](FamilyUser, "type").
		register(string(UserTypeBot), decodeBotUser).
		register(string(UserTypePerson), decodePersonUser)

	pageOrDatabaseRegistry = newRegistry[SearchResult](FamilyPageOrDatabase, "object").
		register(string(ObjectPage), asSearchResult(decodePage)).
		register(string(ObjectDatabase), asSearchResult(decodeDatabase))
}

func asSearchResult[T SearchResult](dec Decoder[T]) Decoder[SearchResult] {
	return func(raw Raw) (SearchResult, error) {
		v, err := dec(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// BlockRegistry exposes the block family registry.
func BlockRegistry() *Registry[Block] { return blockRegistry }

// UserRegistry exposes the user family registry.
func UserRegistry() *Registry[User] { return userRegistry }

// PageOrDatabaseRegistry exposes the search result registry.
func PageOrDatabaseRegistry() *Registry[SearchResult] { return pageOrDatabaseRegistry }

// Decode resolves raw within family and decodes it. Object families yield an
// Entity; the closed families yield their own sum type (Property,
// PropertyValue, RichText, Mention, Parent, FormulaResult, RollupResult).
// An unknown family fails with UnsupportedVariant.
func Decode(raw Raw, family Family) (any, error) {
	switch family {
	case FamilyBlock:
		return decodeAny(raw, DecodeBlock)
	case FamilyUser:
		return decodeAny(raw, DecodeUser)
	case FamilyPageOrDatabase:
		return decodeAny(raw, DecodeSearchResult)
	case FamilyProperty:
		return decodeAny(raw, DecodeProperty)
	case FamilyPropertyValue:
		return decodeAny(raw, DecodePropertyValue)
	case FamilyRichText:
		return decodeAny(raw, DecodeRichText)
	case FamilyMention:
		return decodeAny(raw, decodeMention)
	case FamilyParent:
		return decodeAny(raw, parentDecoder(ParentTypeDatabase, ParentTypePage, ParentTypeWorkspace))
	case FamilyFormula:
		return decodeAny(raw, decodeFormulaResult)
	case FamilyRollup:
		return decodeAny(raw, decodeRollupResult)
	default:
		return nil, &DecodeError{
			Kind:          KindUnsupportedVariant,
			Discriminator: string(family),
			Message:       "unknown entity family",
		}
	}
}

func decodeAny[T any](raw Raw, dec Decoder[T]) (any, error) {
	v, err := dec(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeBlock decodes any block. Unregistered block types degrade to an
// UnsupportedBlock that keeps the common fields.
func DecodeBlock(raw Raw) (Block, error) { return blockRegistry.Resolve(raw) }

// DecodeUser decodes a bot or person user. Unknown user types fail.
func DecodeUser(raw Raw) (User, error) { return userRegistry.Resolve(raw) }

// DecodeSearchResult decodes a page or a database, routed on "object".
func DecodeSearchResult(raw Raw) (SearchResult, error) { return pageOrDatabaseRegistry.Resolve(raw) }
