package grammar

import xmlcore "github.com/arborxml/xmlcore/xml"

// AttributeDeclaration is grammar/'s richer view of one declared
// attribute -- the xmlcore.AttributeDecl the parser consumes is a
// projection of this (see ToParserDecl), built once per (element,
// attribute) pair and cached by the owning backend. Type-tag names are
// grounded on moznion-helium's AttributeType const block (AttrCDATA,
// AttrID, ... AttrNotation), renamed to spec.md §3's
// {CDATA|ID|IDREF|...} vocabulary.
type AttributeDeclaration struct {
	Name       xmlcore.Name
	Type       xmlcore.AttributeTypeTag
	Default    string
	HasDefault bool
	Fixed      bool
	Required   bool
	EnumValues []string
	Facets     *SimpleTypeFacets // set only when Type == AttrTyped
}

// ToParserDecl projects d down to the xmlcore.AttributeDecl shape the
// parser consumes, dropping the facet checker (attribute content-facet
// checking happens in grammar/facet.go via ValidateAttributes, not in
// the parser's defaulting/type-tagging pass).
func (d AttributeDeclaration) ToParserDecl() xmlcore.AttributeDecl {
	return xmlcore.AttributeDecl{
		Name: d.Name, Type: d.Type, Default: d.Default,
		HasDefault: d.HasDefault, Fixed: d.Fixed, Required: d.Required,
		EnumValues: d.EnumValues,
	}
}

// EntityDeclaration is a named general entity as seen by entity
// expansion: its replacement text and whether it is external (and so
// unsupported for inline expansion, per spec.md §9 Open Question #1).
type EntityDeclaration struct {
	Name     string
	Value    string
	External bool
	SystemID string
	PublicID string
}
