package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/csvjson/internal/models"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		kind    models.Kind
		literal string
	}{
		{name: "empty is null", cell: "", kind: models.Null},
		{name: "integer", cell: "30", kind: models.Number, literal: "30"},
		{name: "zero", cell: "0", kind: models.Number, literal: "0"},
		{name: "negative integer", cell: "-12", kind: models.Number, literal: "-12"},
		{name: "plus sign dropped", cell: "+7", kind: models.Number, literal: "7"},
		{name: "big integer kept exact", cell: "98765432109876543210", kind: models.Number, literal: "98765432109876543210"},
		{name: "leading zero stays text", cell: "007", kind: models.String, literal: "007"},
		{name: "float", cell: "3.14", kind: models.Number, literal: "3.14"},
		{name: "float with exponent", cell: "-1.5e-3", kind: models.Number, literal: "-1.5e-3"},
		{name: "exponent only", cell: "2E10", kind: models.Number, literal: "2E10"},
		{name: "overflowing float stays text", cell: "1e999", kind: models.String, literal: "1e999"},
		{name: "bare fraction stays text", cell: ".5", kind: models.String, literal: ".5"},
		{name: "trailing dot stays text", cell: "5.", kind: models.String, literal: "5."},
		{name: "true", cell: "true", kind: models.Bool},
		{name: "false", cell: "false", kind: models.Bool},
		{name: "booleans are case sensitive", cell: "True", kind: models.String, literal: "True"},
		{name: "whitespace is text", cell: " 1", kind: models.String, literal: " 1"},
		{name: "plain text", cell: "Alice", kind: models.String, literal: "Alice"},
		{name: "null word is text", cell: "null", kind: models.String, literal: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewAnalyzer().Infer(tt.cell)
			assert.Equal(t, tt.kind, v.Kind())
			switch tt.kind {
			case models.Number:
				assert.Equal(t, tt.literal, v.Literal())
			case models.String:
				assert.Equal(t, tt.literal, v.Str())
			case models.Bool:
				assert.Equal(t, tt.cell == "true", v.Bool())
			}
		})
	}
}

func TestInfer_Counts(t *testing.T) {
	a := NewAnalyzer()
	for _, cell := range []string{"1", "2.5", "x", "", "true", "y"} {
		a.Infer(cell)
	}
	assert.Equal(t, 2, a.Count(models.Number))
	assert.Equal(t, 2, a.Count(models.String))
	assert.Equal(t, 1, a.Count(models.Null))
	assert.Equal(t, 1, a.Count(models.Bool))
	assert.Equal(t, 0, a.Count(models.Array))
	assert.Equal(t, 6, a.Total())
}
