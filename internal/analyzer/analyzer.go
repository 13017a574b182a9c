package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/csvjson/internal/models"
)

// Lexical patterns for CSV cells. Integers follow the JSON literal rules
// (no leading zeros) so values like "007" stay strings.
var (
	integerRegex = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatRegex   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Analyzer infers JSON types for CSV cell text and keeps a tally of what it
// produced.
type Analyzer struct {
	// counts tracks how many cells were inferred as each kind
	counts map[models.Kind]int
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		counts: make(map[models.Kind]int),
	}
}

// Infer classifies a single cell, trying in order: empty → null, integer,
// float, true/false (case-sensitive), and finally string.
func (a *Analyzer) Infer(cell string) models.Value {
	v := inferCell(cell)
	a.counts[v.Kind()]++
	return v
}

// Count returns how many cells have been inferred as kind.
func (a *Analyzer) Count(kind models.Kind) int {
	return a.counts[kind]
}

// Total returns the number of cells inferred so far.
func (a *Analyzer) Total() int {
	total := 0
	for _, n := range a.counts {
		total += n
	}
	return total
}

func inferCell(cell string) models.Value {
	if cell == "" {
		return models.NullValue()
	}
	if integerRegex.MatchString(cell) {
		return models.NumberValue(strings.TrimPrefix(cell, "+"))
	}
	if floatRegex.MatchString(cell) {
		// Values outside the float64 range stay text.
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return models.NumberValue(strings.TrimPrefix(cell, "+"))
		}
		return models.StringValue(cell)
	}
	switch cell {
	case "true":
		return models.BoolValue(true)
	case "false":
		return models.BoolValue(false)
	}
	return models.StringValue(cell)
}
