package xsdschema

import (
	"regexp"
	"strconv"

	"github.com/arborxml/xmlcore/grammar"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

// builtinKinds maps the XSD built-in type names this core recognizes
// lexically (spec.md §4.F) to their BuiltinKind, so an xs:attribute or
// xs:element whose type points straight at a built-in (no named
// restriction in the schema) still gets a lexical check.
var builtinKinds = map[string]grammar.BuiltinKind{
	"string":             grammar.BuiltinString,
	"normalizedString":   grammar.BuiltinString,
	"token":               grammar.BuiltinString,
	"integer":             grammar.BuiltinInteger,
	"int":                 grammar.BuiltinInteger,
	"long":                grammar.BuiltinInteger,
	"short":               grammar.BuiltinInteger,
	"unsignedInt":         grammar.BuiltinInteger,
	"unsignedLong":        grammar.BuiltinInteger,
	"nonNegativeInteger":  grammar.BuiltinInteger,
	"positiveInteger":     grammar.BuiltinInteger,
	"decimal":             grammar.BuiltinDecimal,
	"float":               grammar.BuiltinDecimal,
	"double":              grammar.BuiltinDecimal,
	"boolean":             grammar.BuiltinBoolean,
	"dateTime":            grammar.BuiltinDateTime,
	"date":                grammar.BuiltinDate,
	"anyURI":              grammar.BuiltinAnyURI,
}

// builtinFacets returns the facet set for a bare built-in type reference
// (e.g. type="xs:integer" with no xs:restriction of its own), or nil if
// typeName names neither a built-in this core knows nor a user type
// (the caller falls back to the schema's own named SimpleTypes map for
// the latter).
func builtinFacets(typeName string) *grammar.SimpleTypeFacets {
	kind, ok := builtinKinds[localPart(typeName)]
	if !ok {
		return nil
	}
	return &grammar.SimpleTypeFacets{BuiltinKind: kind}
}

// parseSimpleType compiles an xs:simpleType's xs:restriction -- base type
// plus facet children (xs:enumeration, xs:pattern, xs:length,
// xs:minLength, xs:maxLength, xs:minInclusive, xs:maxInclusive,
// xs:minExclusive, xs:maxExclusive) -- into a SimpleTypeFacets. Unions
// and lists are out of scope for this core's XSD subset (DESIGN.md).
func (g *Grammar) parseSimpleType(n *xmlcore.Node) *grammar.SimpleTypeFacets {
	f := &grammar.SimpleTypeFacets{}
	for _, child := range n.Children {
		if child.Kind != xmlcore.ElementNode || child.Name.URI != XSDNamespace || child.Name.Local != "restriction" {
			continue
		}
		if base, ok := attr(child, "base"); ok {
			if kind, ok := builtinKinds[localPart(base)]; ok {
				f.BuiltinKind = kind
			} else if bf := g.SimpleTypes[qualify(g.TargetNamespace, base)]; bf != nil {
				*f = *bf
			}
		}
		for _, facet := range child.Children {
			if facet.Kind != xmlcore.ElementNode || facet.Name.URI != XSDNamespace {
				continue
			}
			v, _ := attr(facet, "value")
			switch facet.Name.Local {
			case "enumeration":
				f.Enumeration = append(f.Enumeration, v)
			case "pattern":
				if re, err := regexp.Compile(v); err == nil {
					f.Patterns = append(f.Patterns, re)
				}
			case "length":
				if iv, err := strconv.Atoi(v); err == nil {
					f.Length, f.HasLength = iv, true
				}
			case "minLength":
				if iv, err := strconv.Atoi(v); err == nil {
					f.MinLength, f.HasMinLength = iv, true
				}
			case "maxLength":
				if iv, err := strconv.Atoi(v); err == nil {
					f.MaxLength, f.HasMaxLength = iv, true
				}
			case "minInclusive":
				f.MinInclusive, f.HasMinIncl = v, true
			case "maxInclusive":
				f.MaxInclusive, f.HasMaxIncl = v, true
			case "minExclusive":
				f.MinExclusive, f.HasMinExcl = v, true
			case "maxExclusive":
				f.MaxExclusive, f.HasMaxExcl = v, true
			}
		}
	}
	return f
}
