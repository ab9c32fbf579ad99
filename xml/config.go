package xml

import "log/slog"

// config holds parser construction options, assembled via the Option
// pattern the teacher uses throughout its public API.
type config struct {
	validating bool
	grammar    Grammar
	catalog    EntityResolver
	version    string // forced XML version; "" means "read from the declaration"
	logger     *slog.Logger
}

// EntityResolver resolves a PUBLIC/SYSTEM identifier pair to a readable
// source, the role catalog.Catalog plays for this package without xml/
// importing catalog/ (same cycle-avoidance reasoning as Grammar).
type EntityResolver interface {
	Resolve(publicID, systemID string) (resolvedSystemID string, ok bool)
}

// Option configures a Parser at construction time.
type Option func(*config)

// Validating turns on grammar-driven validation (spec.md §6). Without
// this, GrammarErr/ResourceErr/ValidationErr are all demotable warnings
// and no content-model or attribute-declaration checking runs at all.
func Validating(v bool) Option {
	return func(c *config) { c.validating = v }
}

// WithGrammar supplies the Grammar used for entity resolution, attribute
// defaulting, and (when Validating) content validation.
func WithGrammar(g Grammar) Option {
	return func(c *config) { c.grammar = g }
}

// WithCatalog supplies the resolver used to turn external identifiers
// found in the document (SYSTEM ids, xsi:schemaLocation hints) into
// readable sources.
func WithCatalog(r EntityResolver) Option {
	return func(c *config) { c.catalog = r }
}

// ForceVersion overrides XML-version detection, useful for fragments or
// test input that doesn't carry its own declaration.
func ForceVersion(v string) Option {
	return func(c *config) { c.version = v }
}

// WithLogger supplies the *slog.Logger the parser attaches parse-scoped
// fields to (component, correlation id). A nil logger -- the zero
// value -- falls back to slog.Default() at construction time.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts ...Option) *config {
	c := &config{version: "1.0"}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}
