package dtd

import (
	"strings"

	"github.com/arborxml/xmlcore/particle"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// contentModelParser compiles a DTD contentspec string -- EMPTY, ANY,
// Mixed, or a children group -- into a *particle.Particle, implementing
// the grammar spec.md §3 names directly:
//
//	contentspec ::= EMPTY | ANY | Mixed | children
//	children    ::= (choice|seq) ('?'|'*'|'+')?
//	cp          ::= (Name | choice | seq) ('?'|'*'|'+')?
//	choice      ::= '(' cp ('|' cp)+ ')'
//	seq         ::= '(' cp (',' cp)* ')'
type contentModelParser struct {
	s   string
	pos int
}

// ParseContentModel compiles one ELEMENT declaration's content spec. It
// returns (nil, true, false, nil) for EMPTY, (nil, false, true, nil) for
// ANY, and (nil, false, false, nil) for pure (#PCDATA). The two flags keep
// EMPTY and ANY distinct for callers; Grammar treats both as "no
// particle-based validation", so an EMPTY element's children are not
// rejected.
func ParseContentModel(spec string) (p *particle.Particle, isEmpty bool, isAny bool, err error) {
	spec = strings.TrimSpace(spec)
	switch spec {
	case "EMPTY":
		return nil, true, false, nil
	case "ANY":
		return nil, false, true, nil
	}
	if strings.HasPrefix(spec, "(#PCDATA") {
		return parseMixed(spec)
	}
	cp := &contentModelParser{s: spec}
	part, perr := cp.parseCP()
	if perr != nil {
		return nil, false, false, perr
	}
	return part, false, false, nil
}

func parseMixed(spec string) (*particle.Particle, bool, bool, error) {
	inner := strings.TrimSuffix(strings.TrimSuffix(spec, "*"), "")
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(strings.TrimSuffix(inner, "*"), ")")
	names := strings.Split(inner, "|")
	var children []*particle.Particle
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || n == "#PCDATA" {
			continue
		}
		children = append(children, particle.ElementRef(xmlcore.Name{Local: n}).Occurs(0, particle.Unbounded))
	}
	if len(children) == 0 {
		return nil, false, false, nil // pure #PCDATA: caller treats via MixedOnly
	}
	root := particle.Choice(children...)
	root.Mixed = true
	root.Min, root.Max = 0, particle.Unbounded
	return root, false, false, nil
}

func (p *contentModelParser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *contentModelParser) parseCP() (*particle.Particle, error) {
	p.skipSpace()
	var base *particle.Particle
	var err error
	if p.pos < len(p.s) && p.s[p.pos] == '(' {
		base, err = p.parseGroup()
	} else {
		base, err = p.parseName()
	}
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '?':
			p.pos++
			return base.Occurs(0, 1), nil
		case '*':
			p.pos++
			return base.Occurs(0, particle.Unbounded), nil
		case '+':
			p.pos++
			return base.Occurs(1, particle.Unbounded), nil
		}
	}
	return base, nil
}

func (p *contentModelParser) parseName() (*particle.Particle, error) {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(" ,|)?*+", rune(p.s[p.pos])) {
		p.pos++
	}
	name := p.s[start:p.pos]
	return particle.ElementRef(xmlcore.Name{Local: name}), nil
}

func (p *contentModelParser) parseGroup() (*particle.Particle, error) {
	p.pos++ // consume '('
	var members []*particle.Particle
	first, err := p.parseCP()
	if err != nil {
		return nil, err
	}
	members = append(members, first)
	p.skipSpace()
	sep := byte(0)
	for p.pos < len(p.s) && (p.s[p.pos] == ',' || p.s[p.pos] == '|') {
		if sep == 0 {
			sep = p.s[p.pos]
		}
		p.pos++
		next, err := p.parseCP()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
		p.skipSpace()
	}
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ')' {
		p.pos++
	}
	if sep == '|' {
		return particle.Choice(members...), nil
	}
	return particle.Sequence(members...), nil
}
