package converter

import (
	stderrors "errors"
	"fmt"

	"github.com/mcncl/csvjson/internal/analyzer"
	"github.com/mcncl/csvjson/internal/config"
	"github.com/mcncl/csvjson/internal/csv"
	"github.com/mcncl/csvjson/internal/errors"
	"github.com/mcncl/csvjson/internal/formatter"
	"github.com/mcncl/csvjson/internal/models"
	"github.com/mcncl/csvjson/internal/parser"
)

// Summary describes a finished conversion.
type Summary struct {
	// Records is the number of data records read or written, excluding
	// any header row.
	Records int
	// Cells tallies the inferred type of every object cell. It is nil for
	// json-to-csv and for array-of-arrays output.
	Cells *analyzer.Analyzer
}

// ConvertCSVToJSON parses CSV text and renders it as JSON, ending with a
// newline.
func ConvertCSVToJSON(data []byte, cfg config.CSVToJSON) ([]byte, error) {
	out, _, err := CSVToJSONWithSummary(data, cfg)
	return out, err
}

// CSVToJSONWithSummary is ConvertCSVToJSON that also reports what was
// converted.
func CSVToJSONWithSummary(data []byte, cfg config.CSVToJSON) ([]byte, Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Summary{}, err
	}

	records, err := csv.Parse(string(data), csv.Options{
		Comma:  cfg.Comma(),
		Trim:   cfg.Trim,
		Strict: cfg.Strict,
	})
	if err != nil {
		return nil, Summary{}, csvError(err)
	}

	doc := models.NewDocument(records, cfg.HasHeaders)
	summary := Summary{Records: len(doc.Rows)}
	opts := CSVOptions{
		ArrayOfObjects: cfg.ArrayOfObjects,
		KeepHeader:     cfg.KeepHeader,
		KeyCase:        cfg.KeyCase,
	}
	if cfg.ArrayOfObjects {
		opts.Analyzer = analyzer.NewAnalyzer()
		summary.Cells = opts.Analyzer
	}

	v, err := CSVToJSON(doc, opts)
	if err != nil {
		return nil, Summary{}, err
	}

	f := formatter.NewFormatter(formatter.Options{Pretty: cfg.Pretty, Indent: cfg.Indent})
	return []byte(f.Format(v) + "\n"), summary, nil
}

// ConvertJSONToCSV parses JSON text and renders it as CSV.
func ConvertJSONToCSV(data []byte, cfg config.JSONToCSV) ([]byte, error) {
	out, _, err := JSONToCSVWithSummary(data, cfg)
	return out, err
}

// JSONToCSVWithSummary is ConvertJSONToCSV that also reports what was
// converted.
func JSONToCSVWithSummary(data []byte, cfg config.JSONToCSV) ([]byte, Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Summary{}, err
	}

	v, err := parser.ParseBytes(data)
	if err != nil {
		return nil, Summary{}, err
	}

	records, err := JSONToCSV(v)
	if err != nil {
		return nil, Summary{}, err
	}

	text, err := csv.Write(records, csv.WriteOptions{Comma: cfg.Comma(), QuoteAll: cfg.QuoteAll})
	if err != nil {
		return nil, Summary{}, errors.NewOutputError("failed to render CSV", err)
	}

	summary := Summary{Records: len(records)}
	if len(records) > 0 && v.Elems()[0].Kind() == models.Object {
		summary.Records--
	}
	return []byte(text), summary, nil
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.NewCSVParseError(
			fmt.Sprintf("malformed CSV at line %d, column %d", parseErr.Line, parseErr.Column),
			parseErr.Err)
	}
	if stderrors.Is(err, csv.ErrInvalidDelimiter) {
		return errors.NewConfigError("invalid delimiter", errors.ErrInvalidDelimiter)
	}
	return errors.NewInputError("failed to read CSV input", err)
}
