package formatter

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/csvjson/internal/models"
)

// DefaultIndent is used for pretty output when Options.Indent is empty.
const DefaultIndent = "  "

const hex = "0123456789abcdef"

// Options controls the JSON text layout.
type Options struct {
	Pretty bool
	Indent string
}

// Formatter renders values as JSON text
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	if opts.Pretty && opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	return &Formatter{opts: opts}
}

// Format renders v. Object members come out in insertion order, so the same
// value always yields the same bytes. No trailing newline is added.
func (f *Formatter) Format(v models.Value) string {
	var sb strings.Builder
	f.write(&sb, v, 0)
	return sb.String()
}

// Compact renders v on a single line with no insignificant whitespace.
func Compact(v models.Value) string {
	return NewFormatter(Options{}).Format(v)
}

func (f *Formatter) write(sb *strings.Builder, v models.Value, depth int) {
	switch v.Kind() {
	case models.Null:
		sb.WriteString("null")
	case models.Bool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case models.Number:
		sb.WriteString(CanonicalNumber(v.Literal()))
	case models.String:
		writeString(sb, v.Str())
	case models.Array:
		elems := v.Elems()
		if len(elems) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, elem := range elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			f.newline(sb, depth+1)
			f.write(sb, elem, depth+1)
		}
		f.newline(sb, depth)
		sb.WriteByte(']')
	case models.Object:
		obj := v.Members()
		if obj.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		for i, key := range obj.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			f.newline(sb, depth+1)
			writeString(sb, key)
			sb.WriteByte(':')
			if f.opts.Pretty {
				sb.WriteByte(' ')
			}
			member, _ := obj.Get(key)
			f.write(sb, member, depth+1)
		}
		f.newline(sb, depth)
		sb.WriteByte('}')
	}
}

func (f *Formatter) newline(sb *strings.Builder, depth int) {
	if !f.opts.Pretty {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString(f.opts.Indent)
	}
}

// CanonicalNumber returns the single rendering used for a number literal.
// Integer literals are returned as written. Other literals are re-rendered
// with the shortest digits that round-trip through float64, switching to
// exponent form below 1e-6 and at or above 1e21. Literals outside the
// float64 range are returned as written.
func CanonicalNumber(lit string) string {
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	format := byte('f')
	if abs := math.Abs(n); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, n, format, -1, 64)
	if format == 'e' {
		// e-09 becomes e-9
		if l := len(b); l >= 4 && b[l-4] == 'e' && b[l-3] == '-' && b[l-2] == '0' {
			b[l-2] = b[l-1]
			b = b[:l-1]
		}
	}
	return string(b)
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			sb.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				sb.WriteByte('\\')
				sb.WriteByte(c)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				sb.WriteString(`\u00`)
				sb.WriteByte(hex[c>>4])
				sb.WriteByte(hex[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(s[start:i])
			sb.WriteString(`\ufffd`)
			i += size
			start = i
			continue
		}
		i += size
	}
	sb.WriteString(s[start:])
	sb.WriteByte('"')
}
