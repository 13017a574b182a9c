package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/jcgregorio/slog"

	"github.com/mcncl/csvjson/internal/config"
	"github.com/mcncl/csvjson/internal/errors"
	"github.com/mcncl/csvjson/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Config  kong.ConfigFlag  `help:"Path to a YAML config file. Defaults to the nearest .csvjson.yml." placeholder:"PATH"`
	Debug   bool             `help:"Enable debug logging."`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	CsvToJson CSVToJSONCmd `cmd:"" name:"csv-to-json" help:"Convert CSV to JSON."`
	JsonToCsv JSONToCSVCmd `cmd:"" name:"json-to-csv" help:"Convert JSON to CSV."`
}

// Context holds the runtime context passed to every command
type Context struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    slog.Logger
}

func main() {
	ctx := &Context{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := run(os.Args[1:], ctx, os.Exit); err != nil {
		printError(ctx.Stderr, err)
		os.Exit(1)
	}
}

func newParser(cli *CLI, ctx *Context, exit func(int)) (*kong.Kong, error) {
	options := []kong.Option{
		kong.Name("csvjson"),
		kong.Description("Convert between CSV and JSON."),
		kong.Writers(ctx.Stdout, ctx.Stderr),
		kong.Exit(exit),
		kong.Vars{"version": Version},
	}
	// --config still works without a discovered file since the loader is
	// always registered.
	var paths []string
	if path := config.FindConfigFile(); path != "" {
		paths = append(paths, path)
	}
	options = append(options, kong.Configuration(config.Loader, paths...))
	return kong.New(cli, options...)
}

// run parses args and executes the selected command
func run(args []string, ctx *Context, exit func(int)) error {
	var cli CLI
	parser, err := newParser(&cli, ctx, exit)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		var parseErr *kong.ParseError
		if stderrors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return err
	}

	if ctx.Log == nil {
		ctx.Log = logging.New(ctx.Stderr, cli.Debug)
	}
	ctx.Log.Debugf("running %s", kctx.Command())

	return kctx.Run(ctx)
}

// printError writes a one-line error, in red when stderr is a terminal
func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprint(w, "Error")
	_, _ = fmt.Fprintf(w, ": %s\n", errorMessage(err))
}

// errorMessage drops the "Error: " prefix UserFriendlyError adds to
// uncategorized errors, since printError supplies its own.
func errorMessage(err error) string {
	return strings.TrimPrefix(errors.UserFriendlyError(err), "Error: ")
}
