// Package csv reads and writes delimited text with RFC 4180 quoting.
//
// The package knows nothing about JSON. Records are plain []string values;
// callers decide what a header row means.
package csv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrBareQuote is returned when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when a quoted field is still open at EOF.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrQuoteTrailer is returned when text other than a delimiter or line
	// break follows a closing quote.
	ErrQuoteTrailer = errors.New("unexpected text after closing quote")
	// ErrFieldCount is returned in strict mode when a record has the wrong width.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrInvalidDelimiter is returned for delimiters that would make quoting ambiguous.
	ErrInvalidDelimiter = errors.New("invalid delimiter")
	// ErrInvalidUTF8 is returned for input bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// ParseError records where in the input a parse failure happened.
// Line and Column are 1-based; Column counts runes.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Options configures Parse.
type Options struct {
	Comma  rune
	Trim   bool
	Strict bool
}

// Reader parses records from a byte stream.
type Reader struct {
	src *bufio.Reader

	// Comma is the field delimiter. Default is ','.
	Comma rune
	// Trim strips ASCII whitespace around unquoted fields and around the
	// quotes of quoted fields. Quoted contents are kept verbatim.
	Trim bool
	// Strict enables record width enforcement.
	Strict bool
	// FieldsPerRecord is the width every record must have when Strict is
	// set. Zero captures the width of the first record.
	FieldsPerRecord int

	line int
	col  int
}

// NewReader returns a Reader consuming r with the default delimiter.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("csv: reader source cannot be nil")
	}
	return &Reader{
		src:   bufio.NewReader(r),
		Comma: ',',
		line:  1,
	}
}

// Parse reads every record in text. Empty input yields no records.
func Parse(text string, opts Options) ([][]string, error) {
	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}
	if !ValidDelimiter(comma) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, comma)
	}
	r := NewReader(strings.NewReader(text))
	r.Comma = comma
	r.Trim = opts.Trim
	r.Strict = opts.Strict
	return r.ReadAll()
}

// ValidDelimiter reports whether c can separate fields.
func ValidDelimiter(c rune) bool {
	switch c {
	case 0, '"', '\r', '\n', utf8.RuneError:
		return false
	}
	return true
}

// Read returns the next record, or io.EOF once the input is exhausted.
// Blank lines between records are skipped.
func (r *Reader) Read() ([]string, error) {
	for {
		startLine := r.line
		record, err := r.readRecord()
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		if r.Strict {
			if r.FieldsPerRecord <= 0 {
				r.FieldsPerRecord = len(record)
			} else if len(record) != r.FieldsPerRecord {
				return record, &ParseError{
					Line:   startLine,
					Column: 1,
					Err:    fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, r.FieldsPerRecord, len(record)),
				}
			}
		}
		return record, nil
	}
}

// ReadAll reads records until io.EOF.
func (r *Reader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// readRecord returns a nil record (and nil error) for a blank line.
func (r *Reader) readRecord() ([]string, error) {
	comma := r.Comma
	if comma == 0 {
		comma = ','
	}

	var (
		fields     []string
		field      strings.Builder
		quoted     bool // current field opened with a quote
		inQuotes   bool
		afterQuote bool // closing quote seen for the current field
		content    bool // anything at all seen on this record
		quoteLine  int
		quoteCol   int
	)

	finishField := func() {
		s := field.String()
		if r.Trim && !quoted {
			s = trimASCII(s)
		}
		fields = append(fields, s)
		field.Reset()
		quoted = false
		afterQuote = false
	}

	for {
		c, size, err := r.src.ReadRune()
		if err == io.EOF {
			if inQuotes {
				return nil, &ParseError{Line: quoteLine, Column: quoteCol, Err: ErrUnterminatedQuote}
			}
			if !content {
				return nil, io.EOF
			}
			finishField()
			return fields, nil
		}
		if err != nil {
			return nil, err
		}
		r.col++
		if c == utf8.RuneError && size == 1 {
			return nil, r.errorAt(ErrInvalidUTF8)
		}

		if inQuotes {
			switch c {
			case '"':
				if r.peek() == '"' {
					_, _, _ = r.src.ReadRune()
					r.col++
					field.WriteRune('"')
					continue
				}
				inQuotes = false
				afterQuote = true
			case '\r':
				if r.peek() == '\n' {
					_, _, _ = r.src.ReadRune()
				}
				field.WriteRune('\n')
				r.newline()
			case '\n':
				field.WriteRune('\n')
				r.newline()
			default:
				field.WriteRune(c)
			}
			continue
		}

		switch {
		case c == comma:
			content = true
			finishField()
		case c == '\n' || c == '\r':
			if c == '\r' && r.peek() == '\n' {
				_, _, _ = r.src.ReadRune()
			}
			r.newline()
			if !content {
				return nil, nil
			}
			finishField()
			return fields, nil
		case c == '"':
			content = true
			switch {
			case afterQuote:
				return nil, r.errorAt(ErrQuoteTrailer)
			case field.Len() == 0, r.Trim && trimASCII(field.String()) == "":
				field.Reset()
				quoted = true
				inQuotes = true
				quoteLine, quoteCol = r.line, r.col
			default:
				return nil, r.errorAt(ErrBareQuote)
			}
		default:
			content = true
			if afterQuote {
				if r.Trim && isASCIISpace(c) {
					continue
				}
				return nil, r.errorAt(ErrQuoteTrailer)
			}
			field.WriteRune(c)
		}
	}
}

func (r *Reader) peek() rune {
	c, _, err := r.src.ReadRune()
	if err != nil {
		return -1
	}
	_ = r.src.UnreadRune()
	return c
}

func (r *Reader) newline() {
	r.line++
	r.col = 0
}

func (r *Reader) errorAt(err error) error {
	return &ParseError{Line: r.line, Column: r.col, Err: err}
}

func isASCIISpace(c rune) bool {
	switch c {
	case ' ', '\t', '\v', '\f':
		return true
	}
	return false
}

func trimASCII(s string) string {
	return strings.Trim(s, " \t\v\f\r\n")
}
