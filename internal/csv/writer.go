package csv

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

var errWriterNoTarget = errors.New("csv: writer destination cannot be nil")

// numericRegex matches optionally signed integers and decimal floats with an
// optional exponent.
var numericRegex = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// WriteOptions configures Write.
type WriteOptions struct {
	Comma    rune
	QuoteAll bool
}

// Writer emits records terminated with "\n".
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma rune
	// QuoteAll quotes every field that is not numeric.
	QuoteAll bool

	err error
}

// NewWriter returns a buffered Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriter(w),
		Comma: ',',
	}
}

// Write renders records to a string. The result ends with a newline iff at
// least one record is present.
func Write(records [][]string, opts WriteOptions) (string, error) {
	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}
	if !ValidDelimiter(comma) {
		return "", ErrInvalidDelimiter
	}
	var sb strings.Builder
	w := NewWriter(&sb)
	w.Comma = comma
	w.QuoteAll = opts.QuoteAll
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write emits a single record.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	comma := w.Comma
	if comma == 0 {
		comma = ','
	}

	// A lone empty field would otherwise read back as a blank line.
	if len(record) == 1 && record[0] == "" {
		return w.fail(w.writeString("\"\"\n"))
	}

	for i, field := range record {
		if i > 0 {
			if _, err := w.dst.WriteRune(comma); err != nil {
				return w.fail(err)
			}
		}
		if err := w.writeField(field, comma); err != nil {
			return w.fail(err)
		}
	}
	return w.fail(w.dst.WriteByte('\n'))
}

// WriteAll writes records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the destination.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.fail(w.dst.Flush())
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) fail(err error) error {
	if err != nil && w.err == nil {
		w.err = err
	}
	return err
}

func (w *Writer) writeString(s string) error {
	_, err := w.dst.WriteString(s)
	return err
}

func (w *Writer) writeField(field string, comma rune) error {
	if !w.needsQuote(field, comma) {
		return w.writeString(field)
	}
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}
	if err := w.writeString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.dst.WriteByte('"')
}

func (w *Writer) needsQuote(field string, comma rune) bool {
	if w.QuoteAll && !IsNumeric(field) {
		return true
	}
	if field == "" {
		return false
	}
	if strings.ContainsRune(field, comma) || strings.ContainsAny(field, "\"\r\n") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(field)
	last, _ := utf8.DecodeLastRuneInString(field)
	return isASCIISpace(first) || isASCIISpace(last)
}

// IsNumeric reports whether field reads as a signed integer or decimal float.
func IsNumeric(field string) bool {
	return numericRegex.MatchString(field)
}
