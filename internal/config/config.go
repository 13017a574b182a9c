package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/csvjson/internal/csv"
	"github.com/mcncl/csvjson/internal/errors"
)

// DefaultDelimiter separates fields unless configured otherwise.
const DefaultDelimiter = ","

// KeyCase selects how CSV header names are rewritten into object keys.
type KeyCase string

const (
	KeyCaseNone       KeyCase = "none"
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower_camel"
	KeyCaseKebab      KeyCase = "kebab"
)

// KeyCases lists every accepted KeyCase.
var KeyCases = []KeyCase{KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab}

// Apply rewrites a header name.
func (k KeyCase) Apply(header string) string {
	switch k {
	case KeyCaseSnake:
		return strcase.ToSnake(header)
	case KeyCaseCamel:
		return strcase.ToCamel(header)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(header)
	case KeyCaseKebab:
		return strcase.ToKebab(header)
	default:
		return header
	}
}

// Valid reports whether k is a known key case. The empty string means none.
func (k KeyCase) Valid() bool {
	if k == "" {
		return true
	}
	for _, c := range KeyCases {
		if k == c {
			return true
		}
	}
	return false
}

// CSVToJSON holds the resolved options for the csv-to-json command.
type CSVToJSON struct {
	Input  string
	Output string

	Delimiter      string
	ArrayOfObjects bool
	HasHeaders     bool
	Trim           bool

	// Strict rejects rows whose width differs from the first row.
	Strict bool
	// KeepHeader retains the header row in array-of-arrays output.
	KeepHeader bool
	KeyCase    KeyCase
	Pretty     bool
	Indent     string
}

// JSONToCSV holds the resolved options for the json-to-csv command.
type JSONToCSV struct {
	Input  string
	Output string

	Delimiter string
	QuoteAll  bool
}

// NewCSVToJSON returns the csv-to-json defaults.
func NewCSVToJSON() CSVToJSON {
	return CSVToJSON{
		Delimiter:      DefaultDelimiter,
		ArrayOfObjects: true,
		HasHeaders:     true,
		Trim:           false,
		KeyCase:        KeyCaseNone,
		Pretty:         true,
		Indent:         "  ",
	}
}

// NewJSONToCSV returns the json-to-csv defaults.
func NewJSONToCSV() JSONToCSV {
	return JSONToCSV{
		Delimiter: DefaultDelimiter,
		QuoteAll:  false,
	}
}

// Validate checks option values that kong cannot check on its own.
func (c CSVToJSON) Validate() error {
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if !c.KeyCase.Valid() {
		return errors.NewConfigError(fmt.Sprintf("key case %q is not one of %v", c.KeyCase, KeyCases), errors.ErrInvalidKeyCase)
	}
	return nil
}

// Comma returns the delimiter rune, falling back to ',' when the
// delimiter is invalid. Call Validate first.
func (c CSVToJSON) Comma() rune {
	r, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

// Validate checks option values that kong cannot check on its own.
func (c JSONToCSV) Validate() error {
	_, err := ParseDelimiter(c.Delimiter)
	return err
}

// Comma returns the delimiter rune, falling back to ',' when the
// delimiter is invalid. Call Validate first.
func (c JSONToCSV) Comma() rune {
	r, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

// ParseDelimiter accepts exactly one character. "\t" written literally as a
// backslash escape is accepted for tab since shells make a raw tab awkward.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		s = DefaultDelimiter
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || !csv.ValidDelimiter(r) {
		return 0, errors.NewConfigError(fmt.Sprintf("invalid delimiter %q", s), errors.ErrInvalidDelimiter)
	}
	return r, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".csvjson.yml", ".csvjson.yaml", "csvjson.yml", "csvjson.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
