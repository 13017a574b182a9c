package csv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		opts    WriteOptions
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name:    "multiple records",
			records: [][]string{{"alpha", "beta"}, {"gamma", "delta"}},
			want:    "alpha,beta\ngamma,delta\n",
		},
		{
			name:    "empty field",
			records: [][]string{{"", "b"}},
			want:    ",b\n",
		},
		{
			name:    "lone empty field",
			records: [][]string{{""}},
			want:    "\"\"\n",
		},
		{
			name:    "delimiter forces quote",
			records: [][]string{{"alpha,beta"}},
			want:    "\"alpha,beta\"\n",
		},
		{
			name:    "quote escaping",
			records: [][]string{{"he said \"hello\"", "plain"}},
			want:    "\"he said \"\"hello\"\"\",plain\n",
		},
		{
			name:    "newline forces quote",
			records: [][]string{{"multi\nline", "z"}},
			want:    "\"multi\nline\",z\n",
		},
		{
			name:    "surrounding whitespace forces quote",
			records: [][]string{{" lead", "trail\t", "in side"}},
			want:    "\" lead\",\"trail\t\",in side\n",
		},
		{
			name:    "quote all skips numbers",
			records: [][]string{{"alpha", "42", "-3.5", "1e9", ""}},
			opts:    WriteOptions{QuoteAll: true},
			want:    "\"alpha\",42,-3.5,1e9,\"\"\n",
		},
		{
			name:    "semicolon delimiter",
			records: [][]string{{"a;b", "c,d"}},
			opts:    WriteOptions{Comma: ';'},
			want:    "\"a;b\";c,d\n",
		},
		{
			name:    "ragged records",
			records: [][]string{{"a", "b", "c"}, {"d"}},
			want:    "a,b,c\nd\n",
		},
		{
			name:    "no records",
			records: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Write(tt.records, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	records := [][]string{
		{"name", "note", "empty"},
		{"Ann", "say \"hi\", then\nleave", ""},
		{" padded ", "semi;colon", "x"},
	}
	for _, comma := range []rune{',', ';', '\t'} {
		text, err := Write(records, WriteOptions{Comma: comma})
		require.NoError(t, err)
		got, err := Parse(text, Options{Comma: comma})
		require.NoError(t, err)
		assert.Equal(t, records, got, "delimiter %q", comma)
	}
}

func TestIsNumeric(t *testing.T) {
	for _, s := range []string{"0", "-1", "+12", "3.14", "1.", ".5", "6.02e23", "1E-9"} {
		assert.True(t, IsNumeric(s), s)
	}
	for _, s := range []string{"", "abc", "1.2.3", "--1", "1e", "0x10", " 1"} {
		assert.False(t, IsNumeric(s), s)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_StickyError(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.NoError(t, w.Write([]string{"a"}))

	err := w.Flush()
	require.Error(t, err)
	assert.Equal(t, err, w.Error())
	assert.Equal(t, err, w.Write([]string{"b"}))
}

func TestWriter_Stream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Comma = '|'
	require.NoError(t, w.WriteAll([][]string{{"a", "b|c"}, {"1", "2"}}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "a|\"b|c\"\n1|2\n", buf.String())
}
