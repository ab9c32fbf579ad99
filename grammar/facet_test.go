package grammar

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleTypeFacets_Enumeration(t *testing.T) {
	f := &SimpleTypeFacets{Enumeration: []string{"red", "green", "blue"}}
	assert.Empty(t, f.Check("red"))
	assert.NotEmpty(t, f.Check("purple"))
}

func TestSimpleTypeFacets_Pattern(t *testing.T) {
	f := &SimpleTypeFacets{Patterns: []*regexp.Regexp{regexp.MustCompile(`^[0-9]{3}$`)}}
	assert.Empty(t, f.Check("123"))
	assert.NotEmpty(t, f.Check("12"))
}

func TestSimpleTypeFacets_Length(t *testing.T) {
	f := &SimpleTypeFacets{HasLength: true, Length: 3}
	assert.Empty(t, f.Check("abc"))
	assert.NotEmpty(t, f.Check("ab"))
}

func TestSimpleTypeFacets_MinMaxLength(t *testing.T) {
	f := &SimpleTypeFacets{HasMinLength: true, MinLength: 2, HasMaxLength: true, MaxLength: 4}
	assert.Empty(t, f.Check("abc"))
	assert.NotEmpty(t, f.Check("a"))
	assert.NotEmpty(t, f.Check("abcde"))
}

func TestSimpleTypeFacets_FixedValue(t *testing.T) {
	f := &SimpleTypeFacets{HasFixed: true, FixedValue: "en"}
	assert.Empty(t, f.Check("en"))
	assert.NotEmpty(t, f.Check("fr"))
}

func TestSimpleTypeFacets_OrderingFacets_Integer(t *testing.T) {
	f := &SimpleTypeFacets{
		BuiltinKind: BuiltinInteger,
		HasMinIncl:  true, MinInclusive: "1",
		HasMaxIncl: true, MaxInclusive: "10",
	}
	assert.Empty(t, f.Check("5"))
	assert.NotEmpty(t, f.Check("0"))
	assert.NotEmpty(t, f.Check("11"))
}

func TestSimpleTypeFacets_OrderingFacets_ExclusiveBounds(t *testing.T) {
	f := &SimpleTypeFacets{
		BuiltinKind: BuiltinInteger,
		HasMinExcl:  true, MinExclusive: "0",
		HasMaxExcl: true, MaxExclusive: "10",
	}
	assert.Empty(t, f.Check("5"))
	assert.NotEmpty(t, f.Check("0"))
	assert.NotEmpty(t, f.Check("10"))
}

func TestSimpleTypeFacets_BuiltinInteger(t *testing.T) {
	f := &SimpleTypeFacets{BuiltinKind: BuiltinInteger}
	assert.Empty(t, f.Check("42"))
	assert.NotEmpty(t, f.Check("not-a-number"))
}

func TestSimpleTypeFacets_BuiltinBoolean(t *testing.T) {
	f := &SimpleTypeFacets{BuiltinKind: BuiltinBoolean}
	assert.Empty(t, f.Check("true"))
	assert.Empty(t, f.Check("0"))
	assert.NotEmpty(t, f.Check("yes"))
}

func TestSimpleTypeFacets_BuiltinDate(t *testing.T) {
	f := &SimpleTypeFacets{BuiltinKind: BuiltinDate}
	assert.Empty(t, f.Check("2024-01-15"))
	assert.NotEmpty(t, f.Check("01/15/2024"))
}

func TestSimpleTypeFacets_DateOrdering(t *testing.T) {
	f := &SimpleTypeFacets{
		BuiltinKind: BuiltinDate,
		HasMinIncl:  true, MinInclusive: "2024-01-01",
		HasMaxIncl: true, MaxInclusive: "2024-12-31",
	}
	assert.Empty(t, f.Check("2024-06-15"))
	assert.NotEmpty(t, f.Check("2023-12-31"))
}

func TestSimpleTypeFacets_NoFacetsAlwaysPasses(t *testing.T) {
	f := &SimpleTypeFacets{}
	assert.Empty(t, f.Check("anything at all"))
}

func TestSimpleTypeFacets_AccumulatesAllViolations(t *testing.T) {
	f := &SimpleTypeFacets{
		HasLength:   true,
		Length:      3,
		BuiltinKind: BuiltinInteger,
	}
	errs := f.Check("toolong")
	assert.Len(t, errs, 2)
}
