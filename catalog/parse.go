package catalog

import (
	"io"

	xmlcore "github.com/arborxml/xmlcore/xml"
)

// Parse reads an OASIS XML Catalog document from r, using xmlcore's own
// event parser rather than a bespoke reader -- the simplest real
// consumer of the ContentHandler contract outside xmlcore itself.
func Parse(r io.Reader) (*Catalog, error) {
	h := &catalogHandler{cat: &Catalog{}}
	p, err := xmlcore.NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(h); err != nil {
		return nil, err
	}
	return h.cat, nil
}

// catalogHandler builds a Catalog from the catalog element stream. Only
// top-level entry elements are meaningful; nested <group> elements flatten
// their children into the same Catalog (group-level prefer/xml:base
// attributes are out of scope, same as spec.md's catalog section).
type catalogHandler struct {
	xmlcore.BaseHandler
	cat *Catalog
}

func (h *catalogHandler) StartElement(name xmlcore.Name, attrs []xmlcore.Attribute) error {
	get := func(local string) string {
		for _, a := range attrs {
			if a.Name.Local == local {
				return a.Value
			}
		}
		return ""
	}
	switch name.Local {
	case "public":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntryPublic, PublicID: get("publicId"), URI: get("uri")})
	case "system":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntrySystem, SystemID: get("systemId"), URI: get("uri")})
	case "uri":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntryURI, SystemID: get("name"), URI: get("uri")})
	case "rewriteSystem":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntryRewriteSystem, StartsWith: get("systemIdStartString"), URI: get("rewritePrefix")})
	case "rewriteURI":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntryRewriteURI, StartsWith: get("uriStartString"), URI: get("rewritePrefix")})
	case "nextCatalog":
		h.cat.Entries = append(h.cat.Entries, Entry{Kind: EntryNextCatalog, SystemID: get("catalog")})
	}
	return nil
}

var _ xmlcore.ContentHandler = (*catalogHandler)(nil)
