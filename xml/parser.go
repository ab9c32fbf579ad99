package xml

import "io"

// docState names the Event Parser's top-level states (spec.md §5):
// start -> prolog -> elementRoot -> content(depth) -> epilogue -> end.
type docState int

const (
	stateStart docState = iota
	stateProlog
	stateElementRoot
	stateContent
	stateEpilogue
	stateEnd
)

// Parser drives a CharacterStream+Scanner through the document state
// machine, emitting ContentHandler events in document order (spec.md §5).
// A Parser is single-use: call Parse once per document.
type Parser struct {
	cfg     *config
	cs      *CharacterStream
	sc      *Scanner
	h       ContentHandler
	loc     *runtimeLocator
	spaces  *spaceStack
	ids     *idTable
	refOrd  []string
	nsStack []map[string]string
	elems   []Name
	content []*contentFrame
	version string
	state   docState

	grammarName     string
	grammarPublicID string
	grammarSystemID string
	internalSubset  string
}

// DoctypeInfo reports the name/external-id/internal-subset text captured
// from the prolog's DOCTYPE declaration, if any. Building a Grammar from
// internalSubset (see package dtd) is the caller's job: xml/ only
// captures the raw text, since parsing markup declarations is a
// grammar-language concern, not a well-formedness one.
func (p *Parser) DoctypeInfo() (name, publicID, systemID, internalSubset string) {
	return p.grammarName, p.grammarPublicID, p.grammarSystemID, p.internalSubset
}

// NewParser constructs a Parser over r, applying opts. Encoding detection
// runs immediately so ForceVersion and WithGrammar are in effect before
// the first token is scanned.
func NewParser(r io.Reader, opts ...Option) (*Parser, *Error) {
	cfg := newConfig(opts...)
	decoded, _, err := DetectEncoding(r)
	if err != nil {
		if e, ok := err.(*Error); ok {
			return nil, e
		}
		return nil, resourceError("%s", err.Error())
	}
	cs := NewCharacterStream(decoded)
	p := &Parser{
		cfg:     cfg,
		cs:      cs,
		sc:      newScanner(cs),
		loc:     &runtimeLocator{},
		spaces:  newSpaceStack(),
		ids:     newIDTable(),
		nsStack: []map[string]string{{"xml": "http://www.w3.org/XML/1998/namespace"}},
		version: cfg.version,
		state:   stateStart,
	}
	p.sc.setVersion(p.version)
	return p, nil
}

// Parse runs the full document through h.
func (p *Parser) Parse(h ContentHandler) *Error {
	p.h = h
	h.SetDocumentLocator(p.loc)
	p.syncLoc()

	if err := h.StartDocument(); err != nil {
		return p.wrap(err)
	}
	p.state = stateProlog

	if err := p.parseProlog(); err != nil {
		return err
	}
	p.state = stateElementRoot
	if err := p.parseElement(); err != nil {
		return err
	}
	p.state = stateEpilogue
	if err := p.parseMisc(true); err != nil {
		return err
	}
	p.state = stateEnd

	if p.cfg.validating {
		for _, e := range p.ids.finalize(p.refOrd) {
			if e.Fatal(true) {
				return e
			}
		}
	}

	if err := h.EndDocument(); err != nil {
		return p.wrap(err)
	}
	return nil
}

func (p *Parser) syncLoc() {
	p.loc.line, p.loc.col = p.cs.position()
}

func (p *Parser) wrap(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return wellFormednessError("%s", err.Error())
}

func (p *Parser) fail(e *Error) *Error {
	l, c := p.cs.position()
	if e.Line == 0 {
		e.WithPos(l, c)
	}
	e.Version = p.version
	return e
}

// parseProlog consumes an optional XMLDecl, then Misc*, then an optional
// doctypedecl, then Misc* (spec.md's prolog grammar).
func (p *Parser) parseProlog() *Error {
	if p.cs.lookingAt("<?xml") {
		if err := p.parseXMLDecl(); err != nil {
			return p.fail(err)
		}
	}
	if err := p.parseMisc(false); err != nil {
		return err
	}
	if p.cs.lookingAt("<!DOCTYPE") {
		if err := p.parseDoctype(); err != nil {
			return err
		}
	}
	return p.parseMisc(false)
}

// parseXMLDecl scans <?xml version="..." encoding="..." standalone="..."?>.
func (p *Parser) parseXMLDecl() *Error {
	if err := p.sc.consumeLiteral("<?xml"); err != nil {
		return err
	}
	attrs, err := p.scanPseudoAttrs()
	if err != nil {
		return err
	}
	if v, ok := attrs["version"]; ok {
		if v != "1.0" && v != "1.1" {
			return wellFormednessError("unsupported XML version %q", v)
		}
		if p.cfg.version == "" || p.cfg.version == "1.0" {
			p.version = v
			p.sc.setVersion(v)
		}
	}
	if err := p.sc.consumeLiteral("?>"); err != nil {
		return err
	}
	return nil
}

// scanPseudoAttrs scans the name="value" pairs inside an XML/text
// declaration, stopping right before "?>".
func (p *Parser) scanPseudoAttrs() (map[string]string, *Error) {
	out := make(map[string]string)
	for {
		p.sc.skipWhitespace()
		if p.cs.lookingAt("?>") {
			return out, nil
		}
		name, ok := p.sc.scanName()
		if !ok {
			return nil, wellFormednessError("malformed declaration")
		}
		p.sc.skipWhitespace()
		if err := p.sc.consumeLiteral("="); err != nil {
			return nil, err
		}
		p.sc.skipWhitespace()
		val, err := p.sc.scanQuotedLiteral()
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
}

// parseMisc consumes comments, PIs, and whitespace; atEOFOK allows a
// clean end of input (used in the epilogue, where the stream simply ends).
func (p *Parser) parseMisc(atEOFOK bool) *Error {
	for {
		p.sc.skipWhitespace()
		switch {
		case p.cs.lookingAt("<!--"):
			if err := p.parseComment(); err != nil {
				return err
			}
		case p.cs.lookingAt("<?"):
			if err := p.parsePI(); err != nil {
				return err
			}
		default:
			if !atEOFOK || p.cs.atEOF() {
				return nil
			}
			return p.fail(wellFormednessError("content found after root element"))
		}
	}
}

func (p *Parser) parseComment() *Error {
	if err := p.sc.consumeLiteral("<!--"); err != nil {
		return p.fail(err)
	}
	text, err := p.sc.scanUntil("-->")
	if err != nil {
		return p.fail(err)
	}
	if err := p.sc.consumeLiteral("-->"); err != nil {
		return p.fail(err)
	}
	if e := p.h.Comment(text); e != nil {
		return p.fail(p.wrap(e))
	}
	return nil
}

func (p *Parser) parsePI() *Error {
	if err := p.sc.consumeLiteral("<?"); err != nil {
		return p.fail(err)
	}
	target, ok := p.sc.scanName()
	if !ok {
		return p.fail(wellFormednessError("malformed processing instruction"))
	}
	if len(target) == 3 && (target == "xml" || target == "Xml" || target == "XML") {
		return p.fail(wellFormednessError("%q is a reserved processing instruction target", target))
	}
	p.sc.skipWhitespace()
	data, err := p.sc.scanUntil("?>")
	if err != nil {
		return p.fail(err)
	}
	if err := p.sc.consumeLiteral("?>"); err != nil {
		return p.fail(err)
	}
	if e := p.h.ProcessingInstruction(target, data); e != nil {
		return p.fail(p.wrap(e))
	}
	return nil
}

// parseDoctype scans <!DOCTYPE Name (PUBLIC|SYSTEM id)? ('[' intsubset ']')? '>'.
// The internal subset itself is out of scope for xml/ (see dtd/ for
// parsing ELEMENT/ATTLIST/ENTITY/NOTATION declarations); this stores its
// bracketed body as raw text for DoctypeInfo while still firing
// StartDTD/EndDTD around it.
func (p *Parser) parseDoctype() *Error {
	if err := p.sc.consumeLiteral("<!DOCTYPE"); err != nil {
		return p.fail(err)
	}
	p.sc.skipWhitespace()
	name, ok := p.sc.scanName()
	if !ok {
		return p.fail(wellFormednessError("malformed DOCTYPE declaration"))
	}
	p.sc.skipWhitespace()
	var publicID, systemID string
	switch {
	case p.cs.lookingAt("PUBLIC"):
		p.cs.advance(len("PUBLIC"))
		p.sc.skipWhitespace()
		v, err := p.sc.scanQuotedLiteral()
		if err != nil {
			return p.fail(err)
		}
		publicID = v
		p.sc.skipWhitespace()
		v, err = p.sc.scanQuotedLiteral()
		if err != nil {
			return p.fail(err)
		}
		systemID = v
	case p.cs.lookingAt("SYSTEM"):
		p.cs.advance(len("SYSTEM"))
		p.sc.skipWhitespace()
		v, err := p.sc.scanQuotedLiteral()
		if err != nil {
			return p.fail(err)
		}
		systemID = v
	}
	p.grammarName, p.grammarPublicID, p.grammarSystemID = name, publicID, systemID

	if e := p.h.StartDTD(name, publicID, systemID); e != nil {
		return p.fail(p.wrap(e))
	}
	p.sc.skipWhitespace()
	if p.cs.lookingAt("[") {
		p.cs.advance(1)
		depth := 1
		var subset []rune
		for {
			r, ok := p.cs.codePointAt()
			if !ok {
				return p.fail(wellFormednessError("unterminated internal DTD subset"))
			}
			if r == '[' {
				depth++
			} else if r == ']' {
				depth--
				p.cs.advance(1)
				if depth == 0 {
					break
				}
				continue
			}
			subset = append(subset, r)
			p.cs.advance(1)
		}
		p.internalSubset = string(subset)
		p.sc.skipWhitespace()
	}
	if err := p.sc.consumeLiteral(">"); err != nil {
		return p.fail(err)
	}
	if e := p.h.EndDTD(); e != nil {
		return p.fail(p.wrap(e))
	}
	return nil
}

// contentFrame accumulates what an open element's content actually
// contained so ValidateElement can check it against the grammar's
// content model once the matching end-tag is reached.
type contentFrame struct {
	children  []Name
	mixedText bool
}

// parseElement parses one element, recursing into children. The call
// stack depth mirrors element nesting depth, which spec.md's content(depth)
// state name reflects directly.
func (p *Parser) parseElement() *Error {
	if err := p.sc.consumeLiteral("<"); err != nil {
		return p.fail(err)
	}
	rawName, ok := p.sc.scanName()
	if !ok || !isValidName(rawName) {
		return p.fail(wellFormednessError("malformed start tag"))
	}
	name := ParseName(rawName)

	nsFrame := make(map[string]string)
	attrs, selfClosing, err := p.parseAttributes(&name, nsFrame)
	if err != nil {
		return err
	}

	p.nsStack = append(p.nsStack, nsFrame)
	for prefix, uri := range nsFrame {
		if e := p.h.StartPrefixMapping(prefix, uri); e != nil {
			return p.fail(p.wrap(e))
		}
	}
	p.resolveURI(&name)
	for i := range attrs {
		p.resolveURI(&attrs[i].Name)
	}

	xmlSpace := ""
	for _, a := range attrs {
		if a.Name.Prefix == "xml" && a.Name.Local == "space" {
			xmlSpace = a.Value
		}
	}
	p.spaces.push(xmlSpace)
	p.elems = append(p.elems, name)

	if len(p.content) > 0 {
		parent := p.content[len(p.content)-1]
		parent.children = append(parent.children, name)
	}
	p.content = append(p.content, &contentFrame{})

	if p.cfg.validating && p.cfg.grammar != nil {
		for _, e := range p.cfg.grammar.ValidateAttributes(name, attrs) {
			if e.Fatal(true) {
				return p.fail(e)
			}
		}
	}
	if err := p.trackIDAttrs(attrs); err != nil {
		return p.fail(err)
	}

	if e := p.h.StartElement(name, attrs); e != nil {
		return p.fail(p.wrap(e))
	}

	if !selfClosing {
		if err := p.parseContent(name); err != nil {
			return err
		}
	}

	frame := p.content[len(p.content)-1]
	p.content = p.content[:len(p.content)-1]
	if p.cfg.validating && p.cfg.grammar != nil {
		if e := p.cfg.grammar.ValidateElement(name, frame.children, frame.mixedText); e != nil && e.Fatal(true) {
			return p.fail(e)
		}
	}

	if e := p.h.EndElement(name); e != nil {
		return p.fail(p.wrap(e))
	}

	p.elems = p.elems[:len(p.elems)-1]
	p.spaces.pop()
	for prefix := range nsFrame {
		if e := p.h.EndPrefixMapping(prefix); e != nil {
			return p.fail(p.wrap(e))
		}
	}
	p.nsStack = p.nsStack[:len(p.nsStack)-1]
	return nil
}

func (p *Parser) trackIDAttrs(attrs []Attribute) *Error {
	if p.cfg.grammar == nil {
		return nil
	}
	name := p.elems[len(p.elems)-1]
	decls, ok := p.cfg.grammar.GetElementAttributes(name)
	if !ok {
		return nil
	}
	for _, a := range attrs {
		for _, d := range decls {
			if d.Name != a.Name {
				continue
			}
			switch d.Type {
			case AttrID:
				if p.cfg.validating {
					if e := p.ids.declareID(a.Value, p.loc); e != nil && e.Fatal(true) {
						return e
					}
				}
			case AttrIDREF:
				p.ids.declareRef(a.Value, p.loc)
				p.refOrd = append(p.refOrd, a.Value)
			case AttrIDREFS:
				for _, v := range splitTokens(a.Value) {
					p.ids.declareRef(v, p.loc)
					p.refOrd = append(p.refOrd, v)
				}
			}
		}
	}
	return nil
}

func splitTokens(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		if r == ' ' {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// resolveURI fills in n.URI from the active namespace-prefix stack.
func (p *Parser) resolveURI(n *Name) {
	for i := len(p.nsStack) - 1; i >= 0; i-- {
		if uri, ok := p.nsStack[i][n.Prefix]; ok {
			n.URI = uri
			return
		}
	}
}

// parseAttributes scans the attribute list of a start tag up to its
// closing '>' or '/>', splitting out xmlns/xmlns:* declarations into
// nsFrame rather than the returned attribute slice.
func (p *Parser) parseAttributes(elemName *Name, nsFrame map[string]string) ([]Attribute, bool, *Error) {
	var attrs []Attribute
	seen := make(map[Name]bool)
	for {
		hadSpace := p.sc.skipWhitespace()
		if p.cs.lookingAt("/>") {
			p.cs.advance(2)
			p.applyDefaults(elemName, &attrs, seen)
			return attrs, true, nil
		}
		if p.cs.lookingAt(">") {
			p.cs.advance(1)
			p.applyDefaults(elemName, &attrs, seen)
			return attrs, false, nil
		}
		if !hadSpace {
			return nil, false, p.fail(wellFormednessError("expected whitespace before attribute"))
		}
		rawName, ok := p.sc.scanName()
		if !ok || !isValidName(rawName) {
			return nil, false, p.fail(wellFormednessError("malformed attribute name"))
		}
		p.sc.skipWhitespace()
		if err := p.sc.consumeLiteral("="); err != nil {
			return nil, false, p.fail(err)
		}
		p.sc.skipWhitespace()
		raw, err := p.sc.scanQuotedLiteral()
		if err != nil {
			return nil, false, p.fail(err)
		}

		if rawName == "xmlns" {
			nsFrame[""] = raw
			continue
		}
		if len(rawName) > 6 && rawName[:6] == "xmlns:" {
			nsFrame[rawName[6:]] = raw
			continue
		}

		name := ParseName(rawName)
		if seen[name] {
			return nil, false, p.fail(wellFormednessError("duplicate attribute %q", rawName))
		}
		seen[name] = true

		typeTag := p.attrTypeOf(elemName, name)
		norm, err := p.normalizeAttrValue(raw, typeTag)
		if err != nil {
			return nil, false, err
		}
		attrs = append(attrs, Attribute{Name: name, Value: norm, Specified: true})
	}
}

func (p *Parser) attrTypeOf(elemName *Name, attrName Name) AttributeTypeTag {
	if p.cfg.grammar == nil {
		return AttrCDATA
	}
	decls, ok := p.cfg.grammar.GetElementAttributes(*elemName)
	if !ok {
		return AttrCDATA
	}
	for _, d := range decls {
		if d.Name == attrName {
			return d.Type
		}
	}
	return AttrCDATA
}

// normalizeAttrValue implements spec.md §4.B / DESIGN NOTES §9's fixed
// order: line-ending normalization, then entity expansion, then
// whitespace collapse for non-CDATA types.
func (p *Parser) normalizeAttrValue(raw string, typeTag AttributeTypeTag) (string, *Error) {
	for _, r := range raw {
		if r == '<' {
			return "", p.fail(wellFormednessError("literal \"<\" not allowed in attribute value"))
		}
	}
	s := normalizeLineEndings(raw)
	var source EntitySource
	if p.cfg.grammar != nil {
		source = p.cfg.grammar
	}
	expander := newEntityExpander(source, p.version)
	s, err := expander.expand(s, map[string]bool{})
	if err != nil {
		return "", p.fail(err)
	}
	if !isCDATAType(typeTag) {
		s = collapseWhitespace(s)
	}
	return s, nil
}

// applyDefaults adds any declared attributes absent from attrs with their
// default value, per spec.md's attribute-defaulting rule.
func (p *Parser) applyDefaults(elemName *Name, attrs *[]Attribute, seen map[Name]bool) {
	if p.cfg.grammar == nil {
		return
	}
	decls, ok := p.cfg.grammar.GetElementAttributes(*elemName)
	if !ok {
		return
	}
	for _, d := range decls {
		if seen[d.Name] || !d.HasDefault {
			continue
		}
		norm, err := p.normalizeAttrValue(d.Default, d.Type)
		if err != nil {
			continue
		}
		*attrs = append(*attrs, Attribute{
			Name: d.Name, Value: norm, Specified: false,
			LexicalDefault: d.Default, HasLexicalDefault: true,
		})
	}
}

// parseContent scans element content until the matching end-tag: child
// elements, character data, CDATA sections, comments, PIs, and entity
// references.
func (p *Parser) parseContent(name Name) *Error {
	var pending []rune
	flush := func() *Error {
		if len(pending) == 0 {
			return nil
		}
		text := string(pending)
		pending = nil
		if p.spaces.current() == spaceDefault && p.cfg.validating && isAllWhitespace(text) {
			if e := p.h.IgnorableWhitespace(text); e != nil {
				return p.fail(p.wrap(e))
			}
			return nil
		}
		if len(p.content) > 0 {
			p.content[len(p.content)-1].mixedText = true
		}
		if e := p.h.Characters(text); e != nil {
			return p.fail(p.wrap(e))
		}
		return nil
	}

	for {
		switch {
		case p.cs.lookingAt("</"):
			if err := flush(); err != nil {
				return err
			}
			return p.parseEndTag(name)
		case p.cs.lookingAt("<![CDATA["):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parseCDATA(); err != nil {
				return err
			}
		case p.cs.lookingAt("<!--"):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parseComment(); err != nil {
				return err
			}
		case p.cs.lookingAt("<?"):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parsePI(); err != nil {
				return err
			}
		case p.cs.lookingAt("<"):
			if err := flush(); err != nil {
				return err
			}
			if err := p.parseElement(); err != nil {
				return err
			}
		case p.cs.lookingAt("&"):
			if err := p.parseCharRefInContent(&pending); err != nil {
				return err
			}
		default:
			r, ok := p.cs.codePointAt()
			if !ok {
				return p.fail(wellFormednessError("unexpected end of input inside element %q", name.String()))
			}
			if r == '>' && len(pending) >= 2 && pending[len(pending)-1] == ']' && pending[len(pending)-2] == ']' {
				return p.fail(wellFormednessError("literal \"]]>\" not allowed in character data"))
			}
			if !isInCharacterRange(r, p.version) {
				return p.fail(invalidCodePointError(r))
			}
			pending = append(pending, r)
			p.cs.advance(1)
		}
	}
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}

// parseCharRefInContent expands a single &name; or &#...; reference found
// in character content into buf.
func (p *Parser) parseCharRefInContent(buf *[]rune) *Error {
	var raw []rune
	raw = append(raw, '&')
	p.cs.advance(1)
	for {
		r, ok := p.cs.codePointAt()
		if !ok {
			return p.fail(wellFormednessError("unterminated entity or character reference"))
		}
		raw = append(raw, r)
		p.cs.advance(1)
		if r == ';' {
			break
		}
		if len(raw) > 256 {
			return p.fail(wellFormednessError("entity or character reference too long"))
		}
	}
	ref := string(raw)

	if r, ok, err := decodeCharRef(ref); err != nil {
		return p.fail(err)
	} else if ok {
		if !isInCharacterRange(r, p.version) {
			return p.fail(invalidCodePointError(r))
		}
		*buf = append(*buf, r)
		return nil
	}

	name := ref[1 : len(ref)-1]
	if repl, ok := predefinedEntities[name]; ok {
		*buf = append(*buf, []rune(repl)...)
		return nil
	}
	if p.cfg.grammar == nil {
		return p.fail(wellFormednessError("undeclared entity %q", name).WithName(name))
	}
	value, external, ok := p.cfg.grammar.ResolveEntity(name)
	if !ok {
		return p.fail(wellFormednessError("undeclared entity %q", name).WithName(name))
	}
	if external {
		if e := p.h.SkippedEntity(name); e != nil {
			return p.fail(p.wrap(e))
		}
		return nil
	}
	if containsMarkup(value) && !singleConstructRe.MatchString(value) {
		return p.fail(NewGrammarError("entity %q replacement text contains unsupported markup", name).WithName(name))
	}
	expander := newEntityExpander(p.cfg.grammar, p.version)
	expanded, err := expander.expand(value, map[string]bool{name: true})
	if err != nil {
		return p.fail(err)
	}
	*buf = append(*buf, []rune(expanded)...)
	return nil
}

func (p *Parser) parseCDATA() *Error {
	if err := p.sc.consumeLiteral("<![CDATA["); err != nil {
		return p.fail(err)
	}
	text, err := p.sc.scanUntil("]]>")
	if err != nil {
		return p.fail(err)
	}
	if err := p.sc.consumeLiteral("]]>"); err != nil {
		return p.fail(err)
	}
	if e := p.h.StartCDATA(); e != nil {
		return p.fail(p.wrap(e))
	}
	if len(p.content) > 0 {
		p.content[len(p.content)-1].mixedText = true
	}
	if e := p.h.Characters(text); e != nil {
		return p.fail(p.wrap(e))
	}
	if e := p.h.EndCDATA(); e != nil {
		return p.fail(p.wrap(e))
	}
	return nil
}

func (p *Parser) parseEndTag(open Name) *Error {
	if err := p.sc.consumeLiteral("</"); err != nil {
		return p.fail(err)
	}
	rawName, ok := p.sc.scanName()
	if !ok {
		return p.fail(wellFormednessError("malformed end tag"))
	}
	p.sc.skipWhitespace()
	if err := p.sc.consumeLiteral(">"); err != nil {
		return p.fail(err)
	}
	if ParseName(rawName) != (Name{Prefix: open.Prefix, Local: open.Local}) {
		return p.fail(wellFormednessError("end tag %q does not match start tag %q", rawName, open.String()))
	}
	return nil
}
