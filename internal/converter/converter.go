// Package converter maps CSV documents to JSON values and back.
package converter

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/mcncl/csvjson/internal/analyzer"
	"github.com/mcncl/csvjson/internal/config"
	"github.com/mcncl/csvjson/internal/errors"
	"github.com/mcncl/csvjson/internal/formatter"
	"github.com/mcncl/csvjson/internal/models"
)

var (
	// ErrUnsupportedRootType marks JSON whose root is not an array.
	ErrUnsupportedRootType = stderrors.New("the JSON root must be an array")
	// ErrHeterogeneousArray marks a root array mixing objects, arrays and scalars.
	ErrHeterogeneousArray = stderrors.New("array elements must all be objects or all be arrays")
	// ErrUnsupportedElement marks a root array of scalars.
	ErrUnsupportedElement = stderrors.New("array elements must be objects or arrays")
	// ErrAmbiguousHeader marks a header row naming the same column twice.
	ErrAmbiguousHeader = stderrors.New("header names must be unique")
)

// CSVOptions controls the shape of CSVToJSON output.
type CSVOptions struct {
	// ArrayOfObjects emits one object per row. Otherwise each row becomes
	// an array of strings.
	ArrayOfObjects bool
	// KeepHeader emits the header row as the first array in
	// array-of-arrays output.
	KeepHeader bool
	KeyCase    config.KeyCase
	// Analyzer infers cell types for objects. A fresh one is used when nil.
	Analyzer *analyzer.Analyzer
}

// CSVToJSON converts a parsed CSV document into a JSON array.
func CSVToJSON(doc models.Document, opts CSVOptions) (models.Value, error) {
	if !opts.ArrayOfObjects {
		return arrayOfArrays(doc, opts.KeepHeader), nil
	}

	a := opts.Analyzer
	if a == nil {
		a = analyzer.NewAnalyzer()
	}

	if doc.Header == nil {
		rows := make([]models.Value, 0, len(doc.Rows))
		for _, row := range doc.Rows {
			obj := models.NewObject()
			for i, cell := range row {
				obj.Set("field"+strconv.Itoa(i), a.Infer(cell))
			}
			rows = append(rows, models.ObjectValue(obj))
		}
		return models.ArrayValue(rows...), nil
	}

	keys, err := objectKeys(doc.Header, opts.KeyCase)
	if err != nil {
		return models.Value{}, err
	}
	rows := make([]models.Value, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		obj := models.NewObject()
		// Missing trailing cells become null and extra cells are dropped.
		for i, key := range keys {
			if i < len(row) {
				obj.Set(key, a.Infer(row[i]))
			} else {
				obj.Set(key, models.NullValue())
			}
		}
		rows = append(rows, models.ObjectValue(obj))
	}
	return models.ArrayValue(rows...), nil
}

func arrayOfArrays(doc models.Document, keepHeader bool) models.Value {
	rows := make([]models.Value, 0, len(doc.Rows)+1)
	if keepHeader && doc.Header != nil {
		rows = append(rows, stringRow(doc.Header))
	}
	for _, row := range doc.Rows {
		rows = append(rows, stringRow(row))
	}
	return models.ArrayValue(rows...)
}

func stringRow(row []string) models.Value {
	cells := make([]models.Value, len(row))
	for i, cell := range row {
		cells[i] = models.StringValue(cell)
	}
	return models.ArrayValue(cells...)
}

func objectKeys(header []string, keyCase config.KeyCase) ([]string, error) {
	keys := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		key := keyCase.Apply(name)
		if first, ok := seen[key]; ok {
			return nil, errors.NewConversionError(
				fmt.Sprintf("columns %d and %d both map to key %q", first+1, i+1, key),
				ErrAmbiguousHeader)
		}
		seen[key] = i
		keys[i] = key
	}
	return keys, nil
}

// JSONToCSV flattens a JSON array into CSV records. An array of objects
// yields a header row of every key in first-seen order followed by one row
// per object. An array of arrays yields one row per element with no header.
func JSONToCSV(v models.Value) ([][]string, error) {
	if v.Kind() != models.Array {
		return nil, errors.NewConversionError(
			fmt.Sprintf("got a top-level %s", v.Kind()), ErrUnsupportedRootType)
	}
	elems := v.Elems()
	if len(elems) == 0 {
		return nil, nil
	}

	first := elems[0].Kind()
	for i, elem := range elems {
		if elem.Kind() == first {
			continue
		}
		if isScalar(first) && isScalar(elem.Kind()) {
			continue
		}
		return nil, errors.NewConversionError(
			fmt.Sprintf("element %d is %s but element 0 is %s", i, article(elem.Kind()), article(first)),
			ErrHeterogeneousArray)
	}

	switch first {
	case models.Object:
		return objectRecords(elems), nil
	case models.Array:
		records := make([][]string, len(elems))
		for i, elem := range elems {
			records[i] = cellRow(elem.Elems())
		}
		return records, nil
	default:
		return nil, errors.NewConversionError(
			fmt.Sprintf("element 0 is %s", article(first)), ErrUnsupportedElement)
	}
}

func objectRecords(elems []models.Value) [][]string {
	var header []string
	seen := make(map[string]bool)
	for _, elem := range elems {
		for _, key := range elem.Members().Keys() {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}
	// Objects without any keys have nothing to put in a column.
	if len(header) == 0 {
		return nil
	}

	records := make([][]string, 0, len(elems)+1)
	records = append(records, header)
	for _, elem := range elems {
		obj := elem.Members()
		row := make([]string, len(header))
		for i, key := range header {
			if cell, ok := obj.Get(key); ok {
				row[i] = CellText(cell)
			}
		}
		records = append(records, row)
	}
	return records
}

func cellRow(cells []models.Value) []string {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = CellText(cell)
	}
	return row
}

// CellText renders a JSON value as CSV field text. Null becomes an empty
// field and nested containers become compact JSON.
func CellText(v models.Value) string {
	switch v.Kind() {
	case models.Null:
		return ""
	case models.Bool:
		return strconv.FormatBool(v.Bool())
	case models.Number:
		return formatter.CanonicalNumber(v.Literal())
	case models.String:
		return v.Str()
	default:
		return formatter.Compact(v)
	}
}

func isScalar(k models.Kind) bool {
	return k != models.Array && k != models.Object
}

func article(k models.Kind) string {
	switch k {
	case models.Array, models.Object:
		return "an " + k.String()
	default:
		return "a " + k.String()
	}
}
