package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMapping_ExactMatchWinsOverSubstring(t *testing.T) {
	header := []string{"Total Sales", "Sales"}
	specs := []FieldSpec{{Field: "sales", Patterns: []string{"sales"}, Fallback: -1}}

	m := BuildMapping(header, specs)
	assert.Equal(t, 1, m.Column("sales"), "exact match on column 1 should beat substring match on column 0")
}

func TestBuildMapping_SubstringFallsBackWhenNoExactMatch(t *testing.T) {
	header := []string{"Job Business Unit"}
	specs := []FieldSpec{{Field: "businessUnit", Patterns: []string{"business unit"}, Fallback: -1}}

	m := BuildMapping(header, specs)
	assert.Equal(t, 0, m.Column("businessUnit"))
}

func TestBuildMapping_FallbackUsedWhenHeaderDoesNotMatch(t *testing.T) {
	header := []string{"col a", "col b"}
	specs := []FieldSpec{{Field: "name", Patterns: []string{"technician"}, Fallback: 0}}

	m := BuildMapping(header, specs)
	assert.Equal(t, 0, m.Column("name"))
}

func TestBuildMapping_NotMappedWithoutFallback(t *testing.T) {
	header := []string{"col a"}
	specs := []FieldSpec{{Field: "missing", Patterns: []string{"nope"}, Fallback: -1}}

	m := BuildMapping(header, specs)
	assert.Equal(t, NotMapped, m.Column("missing"))
}

func TestCellAt(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", CellAt(row, 0))
	assert.Equal(t, "", CellAt(row, 5))
	assert.Equal(t, "", CellAt(row, NotMapped))
}
