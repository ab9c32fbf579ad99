package xml

// Grammar is the parser-facing view of a DTD/XSD/RelaxNG/composite
// grammar (spec.md §6). It lives in package xml, rather than package
// grammar, so that xml/ (the scanner/parser core) can depend on it
// without grammar/ (which needs xml.Name, xml.Attribute and xml.Error to
// describe what it validates) importing xml/ in a cycle. Concrete
// backends in grammar/, dtd/, xsdschema/ and rng/ implement this
// interface; the parser only ever sees it through here.
type Grammar interface {
	EntitySource

	// GetElementAttributes returns the attribute-list declaration for
	// name, or ok=false if name has no declared attributes at all.
	GetElementAttributes(name Name) ([]AttributeDecl, bool)

	// ValidateAttributes checks a fully normalized attribute set against
	// the declaration for name, returning every violation found (not just
	// the first) so a non-fatal-mode caller can report them all.
	ValidateAttributes(name Name, attrs []Attribute) []*Error

	// ValidateElement checks an element's content against name's content
	// model. children holds the Names of the child elements in document
	// order; text and CDATA runs are not listed there but set mixedText.
	ValidateElement(name Name, children []Name, mixedText bool) *Error
}

// AttributeDecl is one attribute declaration as seen by the parser:
// enough to drive defaulting and type-tagging during normalization
// (spec.md §4.B). Grammar backends translate their own richer
// declarations down to this before handing them to the parser.
type AttributeDecl struct {
	Name           Name
	Type           AttributeTypeTag
	Default        string
	HasDefault     bool
	Fixed          bool
	Required       bool
	EnumValues     []string
}
