package config

import (
	stderrors "errors"
	"io"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/csvjson/internal/errors"
)

// File is the on-disk configuration. Every field is optional; unset fields
// leave the built-in default in place.
type File struct {
	Debug     *bool         `yaml:"debug"`
	CSVToJSON CSVToJSONFile `yaml:"csv_to_json"`
	JSONToCSV JSONToCSVFile `yaml:"json_to_csv"`
}

// CSVToJSONFile holds the csv_to_json section.
type CSVToJSONFile struct {
	Delimiter   *string `yaml:"delimiter"`
	ArrayFormat *bool   `yaml:"array_format"`
	HasHeaders  *bool   `yaml:"has_headers"`
	Trim        *bool   `yaml:"trim"`
	Strict      *bool   `yaml:"strict"`
	KeepHeader  *bool   `yaml:"keep_header"`
	KeyCase     *string `yaml:"key_case"`
	Pretty      *bool   `yaml:"pretty"`
	Indent      *string `yaml:"indent"`
}

// JSONToCSVFile holds the json_to_csv section.
type JSONToCSVFile struct {
	Delimiter *string `yaml:"delimiter"`
	QuoteAll  *bool   `yaml:"quote_all"`
}

// decodeFile rejects unknown keys so that typos surface as errors.
func decodeFile(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// flagValues maps kong flag names to the values set in the file, keyed by
// the command the flags belong to. The empty command holds global flags.
func (f *File) flagValues() map[string]map[string]any {
	global := map[string]any{}
	if f.Debug != nil {
		global["debug"] = *f.Debug
	}

	c := f.CSVToJSON
	csvToJSON := map[string]any{}
	setString(csvToJSON, "delimiter", c.Delimiter)
	setBool(csvToJSON, "array-format", c.ArrayFormat)
	setBool(csvToJSON, "has-headers", c.HasHeaders)
	setBool(csvToJSON, "trim", c.Trim)
	setBool(csvToJSON, "strict", c.Strict)
	setBool(csvToJSON, "keep-header", c.KeepHeader)
	setString(csvToJSON, "key-case", c.KeyCase)
	setBool(csvToJSON, "pretty", c.Pretty)
	setString(csvToJSON, "indent", c.Indent)

	jsonToCSV := map[string]any{}
	setString(jsonToCSV, "delimiter", f.JSONToCSV.Delimiter)
	setBool(jsonToCSV, "quote-all", f.JSONToCSV.QuoteAll)

	return map[string]map[string]any{
		"":            global,
		"csv-to-json": csvToJSON,
		"json-to-csv": jsonToCSV,
	}
}

func setString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func setBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// Resolver exposes the file to kong. Values only fill flags the user did
// not pass on the command line.
func (f *File) Resolver() kong.Resolver {
	values := f.flagValues()
	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		section := ""
		if parent != nil && parent.Command != nil {
			section = parent.Command.Name
		}
		if v, ok := values[section][flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	})
}

// Loader is a kong.ConfigurationLoader for YAML config files.
func Loader(r io.Reader) (kong.Resolver, error) {
	f, err := decodeFile(r)
	if err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	return f.Resolver(), nil
}
