package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mcncl/csvjson/internal/config"
	"github.com/mcncl/csvjson/internal/converter"
	"github.com/mcncl/csvjson/internal/errors"
	"github.com/mcncl/csvjson/internal/models"
)

// stdio is the path that selects stdin or stdout.
const stdio = "-"

// CSVToJSONCmd converts a CSV file to JSON
type CSVToJSONCmd struct {
	Input       string `help:"Path to input CSV file, or - for stdin." short:"i" required:""`
	Output      string `help:"Path to output JSON file, or - for stdout." short:"o" required:""`
	ArrayFormat bool   `help:"Output an array of arrays instead of an array of objects." short:"a"`
	Delimiter   string `help:"Field delimiter." short:"d" default:","`
	HasHeaders  bool   `help:"Treat the first row as a header." default:"true" negatable:""`
	Trim        bool   `help:"Trim whitespace around fields."`
	Strict      bool   `help:"Reject rows whose field count differs from the first row."`
	KeepHeader  bool   `help:"Keep the header row in array-of-arrays output."`
	KeyCase     string `help:"Rewrite header names into object keys (${enum})." enum:"none,snake,camel,lower_camel,kebab" default:"none"`
	Pretty      bool   `help:"Indent the JSON output." default:"true" negatable:""`
	Indent      string `help:"Indentation for pretty output." default:"  "`
}

func (c *CSVToJSONCmd) options() config.CSVToJSON {
	cfg := config.NewCSVToJSON()
	cfg.Input = c.Input
	cfg.Output = c.Output
	cfg.Delimiter = c.Delimiter
	cfg.ArrayOfObjects = !c.ArrayFormat
	cfg.HasHeaders = c.HasHeaders
	cfg.Trim = c.Trim
	cfg.Strict = c.Strict
	cfg.KeepHeader = c.KeepHeader
	cfg.KeyCase = config.KeyCase(c.KeyCase)
	cfg.Pretty = c.Pretty
	cfg.Indent = c.Indent
	return cfg
}

// Run executes the csv-to-json command
func (c *CSVToJSONCmd) Run(ctx *Context) error {
	cfg := c.options()

	// 1. Read CSV input
	start := time.Now()
	data, err := ctx.readInput(cfg.Input)
	if err != nil {
		return err
	}
	ctx.Log.Debugf("read %d bytes from %s", len(data), displayName(cfg.Input, "stdin"))

	// 2. Convert
	out, summary, err := converter.CSVToJSONWithSummary(data, cfg)
	if err != nil {
		return err
	}
	ctx.Log.Debugf("converted %d records in %s", summary.Records, time.Since(start))
	if cells := summary.Cells; cells != nil {
		ctx.Log.Debugf("inferred %d cells: %d number, %d bool, %d null, %d string",
			cells.Total(), cells.Count(models.Number), cells.Count(models.Bool),
			cells.Count(models.Null), cells.Count(models.String))
	}

	// 3. Write JSON output
	if err := ctx.writeOutput(cfg.Output, out); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Stderr, "CSV successfully converted to JSON: %s\n", displayName(cfg.Output, "stdout"))
	return nil
}

// JSONToCSVCmd converts a JSON file to CSV
type JSONToCSVCmd struct {
	Input     string `help:"Path to input JSON file, or - for stdin." short:"i" required:""`
	Output    string `help:"Path to output CSV file, or - for stdout." short:"o" required:""`
	Delimiter string `help:"Field delimiter." short:"d" default:","`
	QuoteAll  bool   `help:"Quote every non-numeric field."`
}

func (c *JSONToCSVCmd) options() config.JSONToCSV {
	cfg := config.NewJSONToCSV()
	cfg.Input = c.Input
	cfg.Output = c.Output
	cfg.Delimiter = c.Delimiter
	cfg.QuoteAll = c.QuoteAll
	return cfg
}

// Run executes the json-to-csv command
func (c *JSONToCSVCmd) Run(ctx *Context) error {
	cfg := c.options()

	// 1. Read JSON input
	start := time.Now()
	data, err := ctx.readInput(cfg.Input)
	if err != nil {
		return err
	}
	ctx.Log.Debugf("read %d bytes from %s", len(data), displayName(cfg.Input, "stdin"))

	// 2. Convert
	out, summary, err := converter.JSONToCSVWithSummary(data, cfg)
	if err != nil {
		return err
	}
	ctx.Log.Debugf("converted %d records in %s", summary.Records, time.Since(start))

	// 3. Write CSV output
	if err := ctx.writeOutput(cfg.Output, out); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Stderr, "JSON successfully converted to CSV: %s\n", displayName(cfg.Output, "stdout"))
	return nil
}

// readInput reads the whole input from a file or stdin
func (ctx *Context) readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	if path == stdio {
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return nil, errors.NewInputError("failed to read from stdin", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("input file '%s' does not exist", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to read input file '%s'", path), err)
	}
	return data, nil
}

// writeOutput writes data to stdout or to path. Files are written to a
// temporary sibling first and renamed into place, so a failed run never
// leaves a partial file behind.
func (ctx *Context) writeOutput(path string, data []byte) error {
	if path == "" {
		return errors.NewOutputError("no output path provided", errors.ErrInvalidFilePath)
	}
	if path == stdio {
		if _, err := ctx.Stdout.Write(data); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.NewOutputError(fmt.Sprintf("output path '%s' is a directory", path), errors.ErrInvalidFilePath)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create file in '%s'", dir), err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	return nil
}

func displayName(path, std string) string {
	if path == stdio {
		return std
	}
	return path
}
