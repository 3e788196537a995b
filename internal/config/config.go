package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/jacoelho/dq/internal/exit"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = ".dq.yaml"

// Commands.
const (
	CommandDiff    = "diff"
	CommandCompare = "compare"
	CommandQuery   = "query"
)

// Stdin is the input name that reads standard input.
const Stdin = "-"

var (
	ErrNoCommand      = errors.New("no command provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInputCount     = errors.New("wrong number of inputs")
	ErrStdinTwice     = errors.New("standard input can only be read once")
	ErrNoExpression   = errors.New("no query expression provided")
)

// Config represents the complete configuration for the dq tool.
// Fields with a yaml tag may also come from the config file; flags take
// precedence over the file, which takes precedence over defaults.
type Config struct {
	Command    string   `yaml:"-" validate:"oneof=diff compare query"`
	Inputs     []string `yaml:"-" validate:"min=1,max=2"`
	Expression string   `yaml:"-"`
	ConfigFile string   `yaml:"-"`

	Format    string `yaml:"format" validate:"oneof=text json yaml"`
	LogLevel  string `yaml:"log_level" validate:"loglevel"`
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	Diff    DiffOptions    `yaml:"diff"`
	Compare CompareOptions `yaml:"compare"`
	Query   QueryOptions   `yaml:"query"`
}

// DiffOptions configures the diff command.
type DiffOptions struct {
	IgnoreCase bool   `yaml:"ignore_case"`
	OnlyDiff   bool   `yaml:"only_diff"`
	Mode       string `yaml:"mode" validate:"oneof=token char"`
}

// CompareOptions configures the compare command.
type CompareOptions struct {
	OnlyDiff bool   `yaml:"only_diff"`
	Input    string `yaml:"input" validate:"oneof=auto json yaml"`
}

// QueryOptions configures the query command.
type QueryOptions struct {
	Engine    string `yaml:"engine" validate:"oneof=native rfc9535"`
	Paths     bool   `yaml:"paths"`
	FailEmpty bool   `yaml:"fail_empty"`
}

// Default returns the configuration used when neither flags nor a config
// file say otherwise.
func Default() *Config {
	return &Config{
		ConfigFile: DefaultConfigFile,
		Format:     "text",
		LogLevel:   "warn",
		LogFormat:  "console",
		Diff:       DiffOptions{Mode: "token"},
		Compare:    CompareOptions{Input: "auto"},
		Query:      QueryOptions{Engine: "native"},
	}
}

// flagValues holds raw flag values before they are layered over the file.
type flagValues struct {
	config    string
	format    string
	logLevel  string
	logFile   string
	logFormat string

	ignoreCase bool
	onlyDiff   bool
	mode       string
	input      string
	engine     string
	paths      bool
	failEmpty  bool
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) < 2 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoCommand, Usage())
	}

	command := args[1]
	switch command {
	case "-h", "--help", "-help", "help":
		return nil, exit.Success(Usage())
	case CommandDiff, CommandCompare, CommandQuery:
	default:
		return nil, exit.Errorf("Error: %v %q\n\n%s", ErrUnknownCommand, command, Usage())
	}

	fs := flag.NewFlagSet(args[0]+" "+command, flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var fv flagValues
	fs.StringVar(&fv.config, "config", DefaultConfigFile, "Path to the YAML config file")
	fs.StringVar(&fv.format, "format", "", "Output format: text, json or yaml")
	fs.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&fv.logFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&fv.logFormat, "log-format", "", "Log format: console or json")

	switch command {
	case CommandDiff:
		fs.BoolVar(&fv.ignoreCase, "ignore-case", false, "Compare lines case-insensitively")
		fs.BoolVar(&fv.onlyDiff, "only-diff", false, "Only print lines that differ")
		fs.StringVar(&fv.mode, "mode", "", "Line comparison: token or char")
	case CommandCompare:
		fs.BoolVar(&fv.onlyDiff, "only-diff", false, "Only print rows that differ")
		fs.StringVar(&fv.input, "input", "", "Input format: auto, json or yaml")
	case CommandQuery:
		fs.StringVar(&fv.engine, "engine", "", "Query engine: native or rfc9535")
		fs.BoolVar(&fv.paths, "paths", false, "Print the path of every match")
		fs.BoolVar(&fv.failEmpty, "fail-empty", false, "Exit with status 1 when nothing matches")
	}

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := Default()
	cfg.Command = command
	cfg.ConfigFile = fv.config

	if err := cfg.loadFile(set["config"]); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}
	fv.apply(cfg, set)

	if err := cfg.setPositional(fs.Args()); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return cfg, nil
}

// apply copies the flags present on the command line into cfg.
func (fv *flagValues) apply(cfg *Config, set map[string]bool) {
	if set["format"] {
		cfg.Format = fv.format
	}
	if set["log-level"] {
		cfg.LogLevel = fv.logLevel
	}
	if set["log-file"] {
		cfg.LogFile = fv.logFile
	}
	if set["log-format"] {
		cfg.LogFormat = fv.logFormat
	}

	switch cfg.Command {
	case CommandDiff:
		if set["ignore-case"] {
			cfg.Diff.IgnoreCase = fv.ignoreCase
		}
		if set["only-diff"] {
			cfg.Diff.OnlyDiff = fv.onlyDiff
		}
		if set["mode"] {
			cfg.Diff.Mode = fv.mode
		}
	case CommandCompare:
		if set["only-diff"] {
			cfg.Compare.OnlyDiff = fv.onlyDiff
		}
		if set["input"] {
			cfg.Compare.Input = fv.input
		}
	case CommandQuery:
		if set["engine"] {
			cfg.Query.Engine = fv.engine
		}
		if set["paths"] {
			cfg.Query.Paths = fv.paths
		}
		if set["fail-empty"] {
			cfg.Query.FailEmpty = fv.failEmpty
		}
	}
}

func (c *Config) setPositional(args []string) error {
	switch c.Command {
	case CommandQuery:
		if len(args) == 0 {
			return ErrNoExpression
		}
		if len(args) > 2 {
			return fmt.Errorf("%w: query takes an expression and at most one file, got %d arguments", ErrInputCount, len(args))
		}
		c.Expression = args[0]
		c.Inputs = []string{Stdin}
		if len(args) == 2 {
			c.Inputs = []string{args[1]}
		}
	default:
		if len(args) != 2 {
			return fmt.Errorf("%w: %s takes exactly two inputs, got %d", ErrInputCount, c.Command, len(args))
		}
		c.Inputs = slices.Clone(args)
	}

	stdin := 0
	for _, in := range c.Inputs {
		if in == Stdin {
			stdin++
		}
	}
	if stdin > 1 {
		return ErrStdinTwice
	}
	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `dq - structural diff and JSONPath query tool

Usage:
  dq diff    [options] <left> <right>
  dq compare [options] <left> <right>
  dq query   [options] <expression> [file]

Commands:
  diff      Compare two text files line by line, highlighting changed tokens
  compare   Compare two JSON or YAML documents path by path
  query     Evaluate a JSONPath expression against a JSON or YAML document

Global options:
  --config FILE           Path to the YAML config file (default: .dq.yaml)
  --format FORMAT         Output format: text, json or yaml (default: text)
  --log-level LEVEL       Log level: debug, info, warn, error (default: warn)
  --log-file FILE         Also write logs to this file, rotated by size
  --log-format FORMAT     Log format: console or json (default: console)
  -h, --help              Show this help message

Diff options:
  --ignore-case           Compare lines case-insensitively
  --only-diff             Only print lines that differ
  --mode MODE             token (default) or char for positional character comparison

Compare options:
  --only-diff             Only print rows that differ
  --input FORMAT          auto (default), json or yaml

Query options:
  --engine ENGINE         native (default) or rfc9535 for filter expressions
  --paths                 Print the path of every match
  --fail-empty            Exit with status 1 when nothing matches

A file name of - reads standard input. Exit status is 0 when inputs match,
1 when they differ and 2 on error.

Examples:
  dq diff old.sql new.sql                       # Token diff of two SQL files
  dq diff --ignore-case --only-diff a.sql b.sql # Only changed lines, ignoring case
  dq compare before.json after.yaml             # Structural comparison across formats
  dq compare --only-diff --format json a.json b.json
  dq query '$.store.book[*].author' books.json  # Select values
  cat books.json | dq query --paths '$..price'  # Read from stdin, print paths
  dq query --engine rfc9535 '$.book[?@.price < 10]' books.json`
}
