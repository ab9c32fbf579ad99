package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocator(line, col int) Locator {
	return &runtimeLocator{line: line, col: col}
}

func TestIDTable_DuplicateID(t *testing.T) {
	tbl := newIDTable()

	err := tbl.declareID("a1", testLocator(1, 1))
	require.Nil(t, err)

	err = tbl.declareID("a1", testLocator(2, 1))
	require.NotNil(t, err)
	assert.Equal(t, ValidationErr, err.Kind)
}

func TestIDTable_FinalizeDanglingIDREF(t *testing.T) {
	tbl := newIDTable()
	tbl.declareID("a1", testLocator(1, 1))
	tbl.declareRef("a1", testLocator(2, 1))
	tbl.declareRef("missing", testLocator(3, 1))

	errs := tbl.finalize([]string{"a1", "missing"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "missing")
}

func TestIDTable_FinalizeOrderIsDeterministic(t *testing.T) {
	tbl := newIDTable()
	tbl.declareRef("z", testLocator(1, 1))
	tbl.declareRef("a", testLocator(2, 1))

	errs := tbl.finalize([]string{"z", "a"})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Msg, "\"z\"")
	assert.Contains(t, errs[1].Msg, "\"a\"")
}
