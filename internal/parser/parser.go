package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/csvjson/internal/errors" // Custom errors package
	"github.com/mcncl/csvjson/internal/models"
)

var (
	// ErrUnexpectedToken marks input that breaks the JSON grammar.
	ErrUnexpectedToken = stderrors.New("unexpected token")
	// ErrUnexpectedEOF marks input that ends before the value is complete.
	ErrUnexpectedEOF = stderrors.New("unexpected end of input")
)

// SyntaxError locates a malformed token by byte offset.
type SyntaxError struct {
	Offset int64
	Detail string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Detail)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse decodes exactly one JSON value from reader. Object member order is
// preserved; numbers keep their literal text.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	root, err := parseValue(decoder)
	if err != nil {
		return models.Value{}, wrapError(decoder, err)
	}

	// Anything other than whitespace after the root value is rejected.
	offset := decoder.InputOffset()
	tok, err := decoder.Token()
	switch {
	case err == io.EOF:
		return root, nil
	case err != nil:
		return models.Value{}, wrapError(decoder, err)
	default:
		return models.Value{}, newParseError(&SyntaxError{
			Offset: offset,
			Detail: fmt.Sprintf("trailing data %v after top-level value", tok),
			Err:    ErrUnexpectedToken,
		})
	}
}

// ParseString parses JSON from a string.
func ParseString(jsonString string) (models.Value, error) {
	return Parse(strings.NewReader(jsonString))
}

// ParseBytes parses JSON from a byte slice.
func ParseBytes(data []byte) (models.Value, error) {
	return Parse(bytes.NewReader(data))
}

func parseValue(decoder *json.Decoder) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return models.Value{}, err
	}
	return fromToken(decoder, tok)
}

func fromToken(decoder *json.Decoder, tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case nil:
		return models.NullValue(), nil
	case bool:
		return models.BoolValue(t), nil
	case json.Number:
		return models.NumberValue(t.String()), nil
	case string:
		return models.StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			return parseArray(decoder)
		case '{':
			return parseObject(decoder)
		}
	}
	return models.Value{}, &SyntaxError{
		Offset: decoder.InputOffset(),
		Detail: fmt.Sprintf("unexpected %v", tok),
		Err:    ErrUnexpectedToken,
	}
}

func parseArray(decoder *json.Decoder) (models.Value, error) {
	elems := make([]models.Value, 0)
	for decoder.More() {
		v, err := parseValue(decoder)
		if err != nil {
			return models.Value{}, err
		}
		elems = append(elems, v)
	}
	if err := expectClose(decoder); err != nil {
		return models.Value{}, err
	}
	return models.ArrayValue(elems...), nil
}

func parseObject(decoder *json.Decoder) (models.Value, error) {
	obj := models.NewObject()
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return models.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, &SyntaxError{
				Offset: decoder.InputOffset(),
				Detail: fmt.Sprintf("object key must be a string, got %v", tok),
				Err:    ErrUnexpectedToken,
			}
		}
		v, err := parseValue(decoder)
		if err != nil {
			return models.Value{}, err
		}
		// Duplicate keys keep the first position and the last value.
		obj.Set(key, v)
	}
	if err := expectClose(decoder); err != nil {
		return models.Value{}, err
	}
	return models.ObjectValue(obj), nil
}

// expectClose consumes the closing delimiter. The decoder has already
// checked that it matches the opener.
func expectClose(decoder *json.Decoder) error {
	_, err := decoder.Token()
	return err
}

// wrapError turns decoder failures into located parse errors. Mid-value
// io.EOF from the decoder is reported as ErrUnexpectedEOF.
func wrapError(decoder *json.Decoder, err error) error {
	var located *SyntaxError
	var syntaxError *json.SyntaxError
	switch {
	case stderrors.As(err, &located):
		return newParseError(located)
	case stderrors.As(err, &syntaxError):
		return newParseError(&SyntaxError{
			Offset: syntaxError.Offset,
			Detail: syntaxError.Error(),
			Err:    ErrUnexpectedToken,
		})
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		return newParseError(&SyntaxError{
			Offset: decoder.InputOffset(),
			Err:    ErrUnexpectedEOF,
		})
	default:
		return errors.NewInputError("failed to read JSON input", err)
	}
}

func newParseError(syn *SyntaxError) error {
	if stderrors.Is(syn.Err, ErrUnexpectedEOF) {
		if syn.Offset == 0 {
			return errors.NewJSONParseError("input is empty or contains only whitespace", syn)
		}
		return errors.NewJSONParseError(fmt.Sprintf("unexpected end of JSON input at offset %d", syn.Offset), syn)
	}
	return errors.NewJSONParseError(fmt.Sprintf("JSON syntax error at offset %d", syn.Offset), syn)
}
