package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONObject_SetKeepsFirstPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("b", NumberValue("1"))
	obj.Set("a", NumberValue("2"))
	obj.Set("b", StringValue("three"))

	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	b, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, "three", b.Str())

	_, ok = obj.Get("missing")
	assert.False(t, ok)
	assert.True(t, obj.Has("a"))
	assert.False(t, obj.Has("missing"))
}

func TestValue_Constructors(t *testing.T) {
	assert.Equal(t, Null, Value{}.Kind(), "zero value is null")
	assert.True(t, NullValue().IsNull())

	arr := ArrayValue()
	assert.Equal(t, Array, arr.Kind())
	assert.NotNil(t, arr.Elems())
	assert.Empty(t, arr.Elems())

	obj := ObjectValue(nil)
	assert.Equal(t, Object, obj.Kind())
	assert.Equal(t, 0, obj.Members().Len())

	var nilObj *JSONObject
	assert.Equal(t, 0, nilObj.Len())
}

func TestValue_Equal(t *testing.T) {
	ab := NewObject()
	ab.Set("a", NumberValue("1"))
	ab.Set("b", BoolValue(true))
	ba := NewObject()
	ba.Set("b", BoolValue(true))
	ba.Set("a", NumberValue("1"))

	tests := []struct {
		name  string
		x, y  Value
		equal bool
	}{
		{"nulls", NullValue(), NullValue(), true},
		{"bools", BoolValue(true), BoolValue(false), false},
		{"number literals", NumberValue("1.0"), NumberValue("1.0"), true},
		{"number spelling", NumberValue("1.0"), NumberValue("1"), false},
		{"string vs number", StringValue("1"), NumberValue("1"), false},
		{"arrays", ArrayValue(StringValue("x")), ArrayValue(StringValue("x")), true},
		{"array length", ArrayValue(StringValue("x")), ArrayValue(), false},
		{"object order", ObjectValue(ab), ObjectValue(ba), false},
		{"same object", ObjectValue(ab), ObjectValue(ab), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.x.Equal(tt.y))
			assert.Equal(t, tt.equal, tt.y.Equal(tt.x))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNewDocument(t *testing.T) {
	records := [][]string{{"name", "age"}, {"Alice", "30"}}

	doc := NewDocument(records, true)
	assert.Equal(t, []string{"name", "age"}, doc.Header)
	assert.Equal(t, [][]string{{"Alice", "30"}}, doc.Rows)

	doc = NewDocument(records, false)
	assert.Nil(t, doc.Header)
	assert.Len(t, doc.Rows, 2)

	doc = NewDocument(nil, true)
	assert.Nil(t, doc.Header)
	assert.Empty(t, doc.Rows)
}
