package xml

// Locator answers "where in the source am I right now" for diagnostics
// raised from inside a ContentHandler callback (spec.md §5's
// DocumentLocator). The Parser keeps one live Locator and hands the same
// instance to every callback; its values change out from under the
// handler after the callback returns, so handlers that need a position
// later must copy Line/Column out immediately.
type Locator interface {
	Line() int
	Column() int
	PublicID() string
	SystemID() string
}

// runtimeLocator is the Parser's own Locator implementation.
type runtimeLocator struct {
	line, col        int
	publicID, sysID  string
}

func (l *runtimeLocator) Line() int         { return l.line }
func (l *runtimeLocator) Column() int       { return l.col }
func (l *runtimeLocator) PublicID() string  { return l.publicID }
func (l *runtimeLocator) SystemID() string  { return l.sysID }

// Notation records a NOTATION declaration, reported via NotationDecl.
type Notation struct {
	Name     string
	PublicID string
	SystemID string
}

// UnparsedEntity records an unparsed (NDATA) general entity, reported via
// UnparsedEntityDecl.
type UnparsedEntity struct {
	Name         string
	PublicID     string
	SystemID     string
	NotationName string
}

// ContentHandler is the event sink the Event Parser drives (spec.md §5).
// Every method may return an error to abort the parse early; a nil return
// continues normally. Methods are called in document order with no
// reordering or buffering beyond what a single construct requires.
type ContentHandler interface {
	// SetDocumentLocator is called at most once, before StartDocument,
	// with a Locator valid for the lifetime of the parse.
	SetDocumentLocator(loc Locator)

	StartDocument() error
	EndDocument() error

	StartPrefixMapping(prefix, uri string) error
	EndPrefixMapping(prefix string) error

	// StartElement reports a start tag (or the start half of an
	// empty-element tag) after namespace resolution, attribute defaulting
	// and normalization, and validation have all run.
	StartElement(name Name, attrs []Attribute) error
	EndElement(name Name) error

	// Characters reports a run of character data as it was assembled
	// after entity expansion and line-ending normalization; the parser
	// may split one logical run across multiple calls.
	Characters(text string) error
	// IgnorableWhitespace reports a whitespace-only run of character data
	// found while validating, outside xml:space="preserve". The parser
	// does not consult the content model for this; in a non-validating
	// parse such runs go to Characters.
	IgnorableWhitespace(text string) error

	ProcessingInstruction(target, data string) error
	Comment(text string) error

	StartCDATA() error
	EndCDATA() error

	StartDTD(name, publicID, systemID string) error
	EndDTD() error

	NotationDecl(n Notation) error
	UnparsedEntityDecl(e UnparsedEntity) error

	// SkippedEntity reports a general entity reference that was
	// deliberately not expanded (spec.md §4.C, e.g. an external entity
	// skipped in a non-validating parse with no resolver configured).
	SkippedEntity(name string) error
}

// BaseHandler implements ContentHandler with no-op bodies so a caller can
// embed it and override only the callbacks it cares about.
type BaseHandler struct{}

func (BaseHandler) SetDocumentLocator(Locator)          {}
func (BaseHandler) StartDocument() error                { return nil }
func (BaseHandler) EndDocument() error                  { return nil }
func (BaseHandler) StartPrefixMapping(string, string) error { return nil }
func (BaseHandler) EndPrefixMapping(string) error       { return nil }
func (BaseHandler) StartElement(Name, []Attribute) error { return nil }
func (BaseHandler) EndElement(Name) error               { return nil }
func (BaseHandler) Characters(string) error             { return nil }
func (BaseHandler) IgnorableWhitespace(string) error    { return nil }
func (BaseHandler) ProcessingInstruction(string, string) error { return nil }
func (BaseHandler) Comment(string) error                { return nil }
func (BaseHandler) StartCDATA() error                   { return nil }
func (BaseHandler) EndCDATA() error                     { return nil }
func (BaseHandler) StartDTD(string, string, string) error { return nil }
func (BaseHandler) EndDTD() error                       { return nil }
func (BaseHandler) NotationDecl(Notation) error         { return nil }
func (BaseHandler) UnparsedEntityDecl(UnparsedEntity) error { return nil }
func (BaseHandler) SkippedEntity(string) error          { return nil }

var _ ContentHandler = BaseHandler{}
