package dtd

import (
	"strings"

	"github.com/arborxml/xmlcore/grammar"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// ParseInternalSubset parses the bracketed body of a <!DOCTYPE ... [ ... ]>
// declaration -- ELEMENT, ATTLIST, ENTITY and NOTATION markup
// declarations -- into a Grammar. Parameter-entity references inside the
// subset are not expanded (spec.md scopes parameter entities out of this
// core's entity-expansion surface, which covers general entities only).
func ParseInternalSubset(subset string) (*Grammar, error) {
	g := New()
	for _, decl := range splitDeclarations(subset) {
		switch {
		case strings.HasPrefix(decl, "ELEMENT"):
			if err := g.parseElementDecl(decl); err != nil {
				return nil, err
			}
		case strings.HasPrefix(decl, "ATTLIST"):
			if err := g.parseAttlistDecl(decl); err != nil {
				return nil, err
			}
		case strings.HasPrefix(decl, "ENTITY"):
			g.parseEntityDecl(decl)
		case strings.HasPrefix(decl, "NOTATION"):
			g.parseNotationDecl(decl)
		}
	}
	return g, nil
}

// splitDeclarations splits the subset into the bodies of each <!...>
// markup declaration, skipping comments and whitespace between them.
func splitDeclarations(subset string) []string {
	var out []string
	i := 0
	for i < len(subset) {
		if subset[i] != '<' {
			i++
			continue
		}
		if strings.HasPrefix(subset[i:], "<!--") {
			end := strings.Index(subset[i+4:], "-->")
			if end < 0 {
				break
			}
			i = i + 4 + end + 3
			continue
		}
		if !strings.HasPrefix(subset[i:], "<!") {
			i++
			continue
		}
		depth := 0
		j := i
		for j < len(subset) {
			switch subset[j] {
			case '<':
				depth++
			case '>':
				depth--
				if depth == 0 {
					goto done
				}
			}
			j++
		}
	done:
		if j >= len(subset) {
			break
		}
		body := strings.TrimSpace(subset[i+2 : j])
		out = append(out, body)
		i = j + 1
	}
	return out
}

func (g *Grammar) parseElementDecl(decl string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "ELEMENT"))
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 {
		return nil
	}
	name := strings.TrimSpace(parts[0])
	spec := strings.TrimSpace(parts[1])
	p, isEmpty, isAny, err := ParseContentModel(spec)
	if err != nil {
		return err
	}
	if isEmpty || isAny {
		g.MixedOnly[name] = true // EMPTY/ANY: no particle-based structural check
		return nil
	}
	if p == nil {
		g.MixedOnly[name] = true // pure (#PCDATA)
		return nil
	}
	g.Elements[name] = p
	return nil
}

func (g *Grammar) parseAttlistDecl(decl string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "ATTLIST"))
	toks := tokenizeAttlist(rest)
	if len(toks) == 0 {
		return nil
	}
	elemName := toks[0]
	toks = toks[1:]
	var decls []grammar.AttributeDeclaration
	for i := 0; i < len(toks); {
		if i+2 >= len(toks) {
			break
		}
		attrName := toks[i]
		typeTok := toks[i+1]
		defaultTok := toks[i+2]
		i += 3
		d := grammar.AttributeDeclaration{Name: xmlcore.Name{Local: attrName}}
		switch {
		case typeTok == "CDATA":
			d.Type = xmlcore.AttrCDATA
		case typeTok == "ID":
			d.Type = xmlcore.AttrID
		case typeTok == "IDREF":
			d.Type = xmlcore.AttrIDREF
		case typeTok == "IDREFS":
			d.Type = xmlcore.AttrIDREFS
		case typeTok == "ENTITY":
			d.Type = xmlcore.AttrENTITY
		case typeTok == "ENTITIES":
			d.Type = xmlcore.AttrENTITIES
		case typeTok == "NMTOKEN":
			d.Type = xmlcore.AttrNMTOKEN
		case typeTok == "NMTOKENS":
			d.Type = xmlcore.AttrNMTOKENS
		case strings.HasPrefix(typeTok, "NOTATION"):
			d.Type = xmlcore.AttrNOTATION
		case strings.HasPrefix(typeTok, "("):
			d.Type = xmlcore.AttrENUM
			d.EnumValues = strings.Split(strings.Trim(typeTok, "()"), "|")
		default:
			d.Type = xmlcore.AttrCDATA
		}
		switch {
		case defaultTok == "#REQUIRED":
			d.Required = true
		case defaultTok == "#IMPLIED":
		case defaultTok == "#FIXED":
			if i < len(toks) {
				d.Fixed = true
				d.HasDefault = true
				d.Default = strings.Trim(toks[i], `"'`)
				i++
			}
		default:
			d.HasDefault = true
			d.Default = strings.Trim(defaultTok, `"'`)
		}
		decls = append(decls, d)
	}
	g.Attlists[elemName] = append(g.Attlists[elemName], decls...)
	return nil
}

// tokenizeAttlist splits on whitespace but keeps quoted literals and
// parenthesized enumerations as single tokens.
func tokenizeAttlist(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	inQuote := byte(0)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			cur.WriteByte(c)
			if c == inQuote {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case c == ' ' && depth == 0:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

func (g *Grammar) parseEntityDecl(decl string) {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "ENTITY"))
	if strings.HasPrefix(rest, "%") {
		return // parameter entities: not expanded by this core
	}
	toks := tokenizeAttlist(rest)
	if len(toks) < 2 {
		return
	}
	name := toks[0]
	if toks[1] == "SYSTEM" || toks[1] == "PUBLIC" {
		e := grammar.EntityDeclaration{Name: name, External: true}
		if toks[1] == "PUBLIC" && len(toks) >= 4 {
			e.PublicID = strings.Trim(toks[2], `"'`)
			e.SystemID = strings.Trim(toks[3], `"'`)
		} else if len(toks) >= 3 {
			e.SystemID = strings.Trim(toks[2], `"'`)
		}
		g.Entities[name] = e
		return
	}
	g.Entities[name] = grammar.EntityDeclaration{Name: name, Value: strings.Trim(toks[1], `"'`)}
}

func (g *Grammar) parseNotationDecl(decl string) {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "NOTATION"))
	toks := tokenizeAttlist(rest)
	if len(toks) < 2 {
		return
	}
	n := xmlcore.Notation{Name: toks[0]}
	if toks[1] == "PUBLIC" && len(toks) >= 3 {
		n.PublicID = strings.Trim(toks[2], `"'`)
		if len(toks) >= 4 {
			n.SystemID = strings.Trim(toks[3], `"'`)
		}
	} else if toks[1] == "SYSTEM" && len(toks) >= 3 {
		n.SystemID = strings.Trim(toks[2], `"'`)
	}
	g.Notations[n.Name] = n
}
