package xml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_FatalRules(t *testing.T) {
	tcs := map[string]struct {
		kind       Kind
		validating bool
		want       bool
	}{
		"well-formedness always fatal":          {WellFormednessErr, false, true},
		"internal always fatal":                 {InternalErr, false, true},
		"validation fatal when validating":       {ValidationErr, true, true},
		"validation demoted when not validating": {ValidationErr, false, false},
		"grammar fatal when validating":          {GrammarErr, true, true},
		"grammar demoted when not validating":    {GrammarErr, false, false},
		"resource fatal when validating":         {ResourceErr, true, true},
		"resource demoted when not validating":   {ResourceErr, false, false},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			e := &Error{Kind: tc.kind}
			assert.Equal(t, tc.want, e.Fatal(tc.validating))
		})
	}
}

func TestError_ErrorMessageIncludesNameAndPosition(t *testing.T) {
	e := wellFormednessError("bad thing").WithName("book").WithPos(4, 7)
	msg := e.Error()
	assert.Contains(t, msg, "bad thing")
	assert.Contains(t, msg, "book")
	assert.Contains(t, msg, "line 4")
	assert.Contains(t, msg, "column 7")
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	e := &Error{Kind: InternalErr, Msg: "wrap", Err: inner}
	assert.ErrorIs(t, e, inner)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "well-formedness", WellFormednessErr.String())
	assert.Equal(t, "validation", ValidationErr.String())
	assert.Equal(t, "grammar", GrammarErr.String())
	assert.Equal(t, "resource", ResourceErr.String())
	assert.Equal(t, "internal", InternalErr.String())
}
