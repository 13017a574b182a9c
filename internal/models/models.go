package models

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value. The zero Value is null.
//
// Numbers keep their literal text so integers of any size pass through
// untouched; the formatter decides how non-integers are rendered.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents or number literal
	arr  []Value
	obj  *JSONObject
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a JSON number literal. The caller guarantees lit is a
// valid JSON number.
func NumberValue(lit string) Value { return Value{kind: Number, s: lit} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue wraps elems.
func ArrayValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Array, arr: elems}
}

// ObjectValue wraps obj. A nil obj becomes an empty object.
func ObjectValue(obj *JSONObject) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: Object, obj: obj}
}

func (v Value) Kind() Kind           { return v.kind }
func (v Value) IsNull() bool         { return v.kind == Null }
func (v Value) Bool() bool           { return v.b }
func (v Value) Literal() string      { return v.s }
func (v Value) Str() string          { return v.s }
func (v Value) Elems() []Value       { return v.arr }
func (v Value) Members() *JSONObject { return v.obj }

// Equal reports deep equality. Object member order is significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case Number, String:
		return v.s == o.s
	case Array:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		return v.obj.Equal(o.obj)
	}
	return false
}

// JSONObject is an insertion-ordered map from string keys to values.
type JSONObject struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *JSONObject {
	return &JSONObject{values: make(map[string]Value)}
}

// Set stores val under key. An existing key keeps its position.
func (o *JSONObject) Set(key string, val Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Get returns the value under key.
func (o *JSONObject) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *JSONObject) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (o *JSONObject) Keys() []string { return o.keys }

// Len returns the number of members.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Equal compares keys, order and values.
func (o *JSONObject) Equal(other *JSONObject) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		if !o.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}

// Document is a parsed CSV file. Header is nil when the input has no
// header row.
type Document struct {
	Header []string
	Rows   [][]string
}

// NewDocument splits records into header and data rows.
func NewDocument(records [][]string, hasHeaders bool) Document {
	if hasHeaders && len(records) > 0 {
		return Document{Header: records[0], Rows: records[1:]}
	}
	return Document{Rows: records}
}
