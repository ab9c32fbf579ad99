package rng

import xmlcore "github.com/arborxml/xmlcore/xml"

// Nullable reports whether p matches the empty sequence -- the
// Brzozowski-derivative base case that replaces the "did we reach an
// accepting position" check particle/'s matchPositions does for DTD/XSD
// content models.
func Nullable(p *Pattern) bool {
	if p == nil {
		return false
	}
	switch p.Kind {
	case KindEmpty:
		return true
	case KindNotAllowed, KindElement, KindAttribute:
		return false
	case KindText:
		return true
	case KindGroup, KindInterleave:
		return Nullable(p.Left) && Nullable(p.Right)
	case KindChoice:
		return Nullable(p.Left) || Nullable(p.Right)
	case KindOneOrMore:
		return Nullable(p.Left)
	default:
		return false
	}
}

// DerivativeElement computes p's derivative with respect to a child
// element named name -- the residual pattern that must match everything
// after that child. A nil result means name is not permitted at this
// point (the NotAllowed pattern collapses to nil rather than being
// threaded through every call site, the same "absence signals failure"
// shape idtable.go's declareID uses for duplicate detection).
func DerivativeElement(p *Pattern, name xmlcore.Name) *Pattern {
	d := derivElement(p, name)
	if d == nil || d.Kind == KindNotAllowed {
		return nil
	}
	return d
}

func derivElement(p *Pattern, name xmlcore.Name) *Pattern {
	if p == nil {
		return NotAllowed()
	}
	switch p.Kind {
	case KindElement:
		if p.Name == name {
			return Empty()
		}
		return NotAllowed()
	case KindGroup:
		left := Group(derivElement(p.Left, name), p.Right)
		if Nullable(p.Left) {
			return Choice(left, derivElement(p.Right, name))
		}
		return left
	case KindInterleave:
		left := Interleave(derivElement(p.Left, name), p.Right)
		right := Interleave(p.Left, derivElement(p.Right, name))
		return Choice(left, right)
	case KindChoice:
		return Choice(derivElement(p.Left, name), derivElement(p.Right, name))
	case KindOneOrMore:
		return Group(derivElement(p.Left, name), ZeroOrMore(p.Left))
	default:
		return NotAllowed()
	}
}

// DerivativeText computes p's derivative with respect to a character
// data run: any pattern containing KindText absorbs text in place, a
// pattern with none rejects it.
func DerivativeText(p *Pattern) *Pattern {
	d := derivText(p)
	if d == nil || d.Kind == KindNotAllowed {
		return nil
	}
	return d
}

func derivText(p *Pattern) *Pattern {
	if p == nil {
		return NotAllowed()
	}
	switch p.Kind {
	case KindText:
		return p
	case KindGroup:
		left := Group(derivText(p.Left), p.Right)
		if Nullable(p.Left) {
			return Choice(left, derivText(p.Right))
		}
		return left
	case KindInterleave:
		left := Interleave(derivText(p.Left), p.Right)
		right := Interleave(p.Left, derivText(p.Right))
		return Choice(left, right)
	case KindChoice:
		return Choice(derivText(p.Left), derivText(p.Right))
	case KindOneOrMore:
		return Group(derivText(p.Left), ZeroOrMore(p.Left))
	default:
		return NotAllowed()
	}
}
