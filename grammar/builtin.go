package grammar

import (
	"fmt"
	"strconv"
	"time"
)

// checkBuiltin validates value's lexical form against the built-in XSD
// simple type f.BuiltinKind names, using strconv/time.Parse rather than a
// hand-rolled lexer (DESIGN.md: these are exactly the parsers the Go
// standard library exists for; no pack example reimplements them).
func (f *SimpleTypeFacets) checkBuiltin(value string) error {
	switch f.BuiltinKind {
	case BuiltinInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("value %q is not a valid integer", value)
		}
	case BuiltinDecimal:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("value %q is not a valid decimal", value)
		}
	case BuiltinBoolean:
		switch value {
		case "true", "false", "1", "0":
		default:
			return fmt.Errorf("value %q is not a valid boolean", value)
		}
	case BuiltinDateTime:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return fmt.Errorf("value %q is not a valid xs:dateTime: %w", value, err)
		}
	case BuiltinDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("value %q is not a valid xs:date: %w", value, err)
		}
	case BuiltinAnyURI:
		if value == "" {
			return fmt.Errorf("value %q is not a valid xs:anyURI", value)
		}
	}
	return nil
}

// dateOrderKey reduces a dateTime/date lexical value to a comparable
// float64 (Unix seconds) for the ordering facets.
func dateOrderKey(value string, kind BuiltinKind) (float64, bool) {
	layout := time.RFC3339
	if kind == BuiltinDate {
		layout = "2006-01-02"
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, false
	}
	return float64(t.Unix()), true
}
