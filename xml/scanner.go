package xml

import "strings"

// Scanner sits directly on a CharacterStream and produces the lexical
// primitives spec.md §4.B's state machine consumes: Names, quoted
// literals, whitespace runs, and delimiter matches. It performs
// well-formedness checks at the character level (spec.md §4.A) but knows
// nothing about document structure -- that's the Event Parser's job.
type Scanner struct {
	cs      *CharacterStream
	version string // "1.0" or "1.1", set once the XML declaration is seen
}

func newScanner(cs *CharacterStream) *Scanner {
	return &Scanner{cs: cs, version: "1.0"}
}

func (s *Scanner) setVersion(v string) { s.version = v }

// isWhitespace reports XML whitespace per the White Space production:
// #x20 | #x9 | #xD | #xA.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// isNameStartChar implements the XML NameStartChar production: ':', '_',
// ASCII letters, and the production's fixed code point ranges above
// U+00BF. It does not consult Go's unicode letter tables.
func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D, r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	default:
		return false
	}
}

// isNameChar approximates NameChar: NameStartChar plus '-', '.', digits,
// the middle dot, and combining-mark ranges.
func isNameChar(r rune) bool {
	if isNameStartChar(r) {
		return true
	}
	switch {
	case r == '-' || r == '.':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == 0xB7:
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r == 0x203F || r == 0x2040:
		return true
	default:
		return false
	}
}

// isValidName reports whether raw satisfies the Name production and
// contains at most one colon (spec.md §3).
func isValidName(raw string) bool {
	if raw == "" {
		return false
	}
	runes := []rune(raw)
	if !isNameStartChar(runes[0]) {
		return false
	}
	colons := 0
	for _, r := range runes[1:] {
		if !isNameChar(r) {
			return false
		}
		if r == ':' {
			colons++
		}
	}
	if runes[0] == ':' {
		colons++
	}
	return colons <= 1
}

// isNCName reports whether raw is a Name with no colon at all (used for
// namespace prefixes and local parts once split).
func isNCName(raw string) bool {
	return isValidName(raw) && !strings.Contains(raw, ":")
}

// skipWhitespace consumes a run of XML whitespace and reports whether any
// was consumed.
func (s *Scanner) skipWhitespace() bool {
	any := false
	for {
		r, ok := s.cs.codePointAt()
		if !ok || !isWhitespace(r) {
			return any
		}
		s.cs.advance(1)
		any = true
	}
}

// scanName scans a Name token starting at the current position. The
// caller must already know a NameStartChar is next (or check the bool
// result, which is false if not).
func (s *Scanner) scanName() (string, bool) {
	r, ok := s.cs.codePointAt()
	if !ok || !isNameStartChar(r) {
		return "", false
	}
	var b strings.Builder
	for {
		r, ok := s.cs.codePointAt()
		if !ok || !isNameChar(r) {
			break
		}
		b.WriteRune(r)
		s.cs.advance(1)
	}
	return b.String(), true
}

// scanQuotedLiteral scans a ' or "-quoted literal, validating every
// contained code point against the active XML version and rejecting
// unterminated/unquoted values as fatal (spec.md §4.B attribute parsing).
func (s *Scanner) scanQuotedLiteral() (string, *Error) {
	quote, ok := s.cs.codePointAt()
	if !ok || (quote != '"' && quote != '\'') {
		return "", wellFormednessError("expected quoted literal")
	}
	s.cs.advance(1)
	var b strings.Builder
	for {
		r, ok := s.cs.codePointAt()
		if !ok {
			return "", wellFormednessError("unterminated literal")
		}
		if r == quote {
			s.cs.advance(1)
			return b.String(), nil
		}
		if !isInCharacterRange(r, s.version) {
			return "", invalidCodePointError(r)
		}
		b.WriteRune(r)
		s.cs.advance(1)
	}
}

// consumeLiteral consumes exactly pattern or reports a fatal error naming
// what was expected instead.
func (s *Scanner) consumeLiteral(pattern string) *Error {
	if !s.cs.lookingAt(pattern) {
		return wellFormednessError("expected %q", pattern)
	}
	s.cs.advance(len([]rune(pattern)))
	return nil
}

// scanUntil accumulates code points, validating each against the active
// XML version, until stop matches or the stream ends. It does not consume
// the stop delimiter. Used for comment/PI-data/CDATA bodies.
func (s *Scanner) scanUntil(stop string) (string, *Error) {
	var b strings.Builder
	for {
		if s.cs.lookingAt(stop) {
			return b.String(), nil
		}
		r, ok := s.cs.codePointAt()
		if !ok {
			return "", wellFormednessError("unexpected end of input, expected %q", stop)
		}
		if !isInCharacterRange(r, s.version) {
			return "", invalidCodePointError(r)
		}
		b.WriteRune(r)
		s.cs.advance(1)
	}
}
