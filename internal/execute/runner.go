package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jacoelho/dq/internal/compare"
	"github.com/jacoelho/dq/internal/config"
	"github.com/jacoelho/dq/internal/exit"
	"github.com/jacoelho/dq/internal/logging"
	"github.com/jacoelho/dq/internal/output"
	"github.com/jacoelho/dq/internal/query"
	"github.com/jacoelho/dq/internal/textdiff"
	"github.com/jacoelho/dq/internal/tree"
)

type Runner struct {
	config    *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

func New(cfg *config.Config) (*Runner, *exit.Result) {
	r := &Runner{
		config:    cfg,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		File:   cfg.LogFile,
		Output: stderrWriter{r},
	})
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v\n", err)
	}
	r.logger = logger.With().Str("command", cfg.Command).Logger()
	r.logCloser = closer

	return r, nil
}

// SetInput replaces stdin as the source of the "-" input.
func (r *Runner) SetInput(rd io.Reader) {
	r.input = rd
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

// stderrWriter sends console log lines wherever the runner's error output
// currently points.
type stderrWriter struct {
	r *Runner
}

func (w stderrWriter) Write(p []byte) (int, error) {
	return w.r.errorWriter().Write(p)
}

// Run executes the configured command and returns the process exit code:
// exit.CodeSame, exit.CodeDifferent or exit.CodeError.
func (r *Runner) Run(ctx context.Context) int {
	defer func() {
		if err := r.logCloser.Close(); err != nil {
			r.logf("Error closing log file: %v\n", err)
		}
	}()

	format, err := output.ParseFormat(r.config.Format)
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	var code int
	switch r.config.Command {
	case config.CommandDiff:
		code, err = r.runDiff(ctx, format)
	case config.CommandCompare:
		code, err = r.runCompare(ctx, format)
	case config.CommandQuery:
		code, err = r.runQuery(ctx, format)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownCommand, r.config.Command)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.logf("\nInterrupted\n")
		} else {
			r.logf("Error: %v\n", err)
		}
		r.logger.Debug().Err(err).Msg("command failed")
		return exit.CodeError
	}

	r.logger.Debug().Int("exit_code", code).Msg("command finished")
	return code
}

func (r *Runner) runDiff(ctx context.Context, format output.Format) (int, error) {
	left, right, err := r.readPair(ctx)
	if err != nil {
		return exit.CodeError, err
	}

	opts := textdiff.LineOptions{
		Mode:        textdiff.Mode(r.config.Diff.Mode),
		IgnoreCase:  r.config.Diff.IgnoreCase,
		OnlyChanged: r.config.Diff.OnlyDiff,
	}
	lines := textdiff.Lines(string(left), string(right), opts)
	changed := textdiff.AnyChanged(lines)

	r.logger.Debug().
		Str("mode", string(opts.Mode)).
		Int("lines", len(lines)).
		Bool("changed", changed).
		Msg("texts compared")

	if err := output.Diff(r.payloadWriter(), format, r.meta(), lines); err != nil {
		return exit.CodeError, fmt.Errorf("formatting results: %w", err)
	}

	if changed {
		return exit.CodeDifferent, nil
	}
	return exit.CodeSame, nil
}

func (r *Runner) runCompare(ctx context.Context, format output.Format) (int, error) {
	left, right, err := r.readPair(ctx)
	if err != nil {
		return exit.CodeError, err
	}

	a, err := r.parse(r.config.Inputs[0], r.config.Compare.Input, left)
	if err != nil {
		return exit.CodeError, err
	}
	b, err := r.parse(r.config.Inputs[1], r.config.Compare.Input, right)
	if err != nil {
		return exit.CodeError, err
	}

	var opts []compare.Option
	if r.config.Compare.OnlyDiff {
		opts = append(opts, compare.OnlyDifferences())
	}
	rows := compare.Trees(a, b, opts...)

	// filtering drops Same rows only, so the verdict survives --only-diff
	stats := compare.Summarize(rows)
	r.logger.Debug().
		Int("rows", stats.Rows).
		Int("different", stats.Different).
		Msg("documents compared")

	if err := output.Compare(r.payloadWriter(), format, r.meta(), rows); err != nil {
		return exit.CodeError, fmt.Errorf("formatting results: %w", err)
	}

	if !stats.Identical() {
		return exit.CodeDifferent, nil
	}
	return exit.CodeSame, nil
}

func (r *Runner) runQuery(ctx context.Context, format output.Format) (int, error) {
	engine, err := query.Lookup(r.config.Query.Engine)
	if err != nil {
		return exit.CodeError, err
	}

	if err := engine.Validate(r.config.Expression); err != nil {
		return exit.CodeError, err
	}

	name := r.config.Inputs[0]
	data, err := r.read(ctx, name)
	if err != nil {
		return exit.CodeError, err
	}

	root, err := r.parse(name, string(tree.FormatAuto), data)
	if err != nil {
		return exit.CodeError, err
	}

	matches, err := engine.Select(root, r.config.Expression)
	if err != nil {
		return exit.CodeError, err
	}

	r.logger.Debug().
		Str("engine", engine.Name()).
		Str("expression", r.config.Expression).
		Int("matches", len(matches)).
		Msg("query evaluated")

	meta := output.QueryMeta{
		Meta:       r.meta(),
		Expression: r.config.Expression,
		Engine:     engine.Name(),
		Paths:      r.config.Query.Paths,
	}
	if err := output.Query(r.payloadWriter(), format, meta, matches); err != nil {
		return exit.CodeError, fmt.Errorf("formatting results: %w", err)
	}

	if r.config.Query.FailEmpty && len(matches) == 0 {
		return exit.CodeDifferent, nil
	}
	return exit.CodeSame, nil
}

func (r *Runner) meta() output.Meta {
	return output.Meta{Command: r.config.Command, Inputs: r.config.Inputs}
}

func (r *Runner) readPair(ctx context.Context) ([]byte, []byte, error) {
	left, err := r.read(ctx, r.config.Inputs[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := r.read(ctx, r.config.Inputs[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// read loads a named input; config.Stdin reads the runner's input.
func (r *Runner) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if name == config.Stdin {
		if r.input == nil {
			return nil, errors.New("reading stdin: no input")
		}
		data, err = io.ReadAll(r.input)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	r.logger.Debug().Str("input", name).Int("bytes", len(data)).Msg("input read")
	return data, nil
}

// parse decodes an input document. The "auto" format is first narrowed by
// the file extension and then by the content itself.
func (r *Runner) parse(name, format string, data []byte) (tree.Value, error) {
	f := tree.Format(format)
	if f == tree.FormatAuto && name != config.Stdin {
		f = tree.DetectFormat(name)
	}

	v, err := tree.Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
