package execute

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/dq/internal/config"
	"github.com/jacoelho/dq/internal/exit"
	"github.com/jacoelho/dq/internal/tree"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newConfig(command string, inputs ...string) *config.Config {
	cfg := config.Default()
	cfg.ConfigFile = ""
	cfg.Command = command
	cfg.Inputs = inputs
	return cfg
}

type harness struct {
	runner *Runner
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	r, exitResult := New(cfg)
	require.Nil(t, exitResult)

	h := &harness{runner: r, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	r.SetOutput(h.stdout)
	r.SetErrorOutput(h.stderr)
	r.SetInput(strings.NewReader(""))
	return h
}

func (h *harness) run() int {
	return h.runner.Run(context.Background())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stdin must not be read")
}

func TestRunDiff(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name   string
		left   string
		right  string
		modify func(c *config.Config)
		code   int
		want   string
	}{
		{
			name:  "identical",
			left:  "select a from t",
			right: "select a from t",
			code:  exit.CodeSame,
			want:  "  1  select a from t\n",
		},
		{
			name:  "token_change",
			left:  "select a from t",
			right: "select b from t",
			code:  exit.CodeDifferent,
			want:  "- 1  select [-a-] from t\n+ 1  select {+b+} from t\n",
		},
		{
			name:   "ignore_case",
			left:   "SELECT a",
			right:  "select a",
			modify: func(c *config.Config) { c.Diff.IgnoreCase = true },
			code:   exit.CodeSame,
			want:   "  1  select a\n",
		},
		{
			name:   "only_changed_lines",
			left:   "a\nb\nc",
			right:  "a\nx\nc",
			modify: func(c *config.Config) { c.Diff.OnlyDiff = true },
			code:   exit.CodeDifferent,
			want:   "- 2  [-b-]\n+ 2  {+x+}\n",
		},
		{
			name:   "char_mode",
			left:   "abc",
			right:  "abd",
			modify: func(c *config.Config) { c.Diff.Mode = "char" },
			code:   exit.CodeDifferent,
			want:   "- 1  ab[-c-]\n+ 1  ab{+d+}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			left := writeFile(t, dir, tt.name+".left", tt.left)
			right := writeFile(t, dir, tt.name+".right", tt.right)

			cfg := newConfig(config.CommandDiff, left, right)
			if tt.modify != nil {
				tt.modify(cfg)
			}

			h := newHarness(t, cfg)
			assert.Equal(t, tt.code, h.run())
			assert.Equal(t, tt.want, h.stdout.String())
			assert.Empty(t, h.stderr.String())
		})
	}
}

func TestRunDiffReadsStdin(t *testing.T) {
	t.Parallel()

	right := writeFile(t, t.TempDir(), "right.sql", "x = 1")

	h := newHarness(t, newConfig(config.CommandDiff, config.Stdin, right))
	h.runner.SetInput(strings.NewReader("x = 1"))

	assert.Equal(t, exit.CodeSame, h.run())
	assert.Equal(t, "  1  x = 1\n", h.stdout.String())
}

func TestRunCompare(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	left := writeFile(t, dir, "left.json", `{
  // comments are allowed
  "name": "svc",
  "ports": [80, 443]
}`)
	same := writeFile(t, dir, "same.yaml", "name: svc\nports:\n  - 80\n  - 443\n")
	changed := writeFile(t, dir, "changed.json", `{"name":"svc","ports":[80],"tls":true}`)

	t.Run("identical_across_formats", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, newConfig(config.CommandCompare, left, same))
		assert.Equal(t, exit.CodeSame, h.run())
		assert.Contains(t, h.stdout.String(), "Rows: 3  Same: 3  Different: 0")
	})

	t.Run("different", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, newConfig(config.CommandCompare, left, changed))
		assert.Equal(t, exit.CodeDifferent, h.run())

		out := h.stdout.String()
		assert.Contains(t, out, "$.ports.1")
		assert.Contains(t, out, "$.tls")
		assert.Contains(t, out, "Left only: 1  Right only: 1")
	})

	t.Run("only_differences", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig(config.CommandCompare, left, changed)
		cfg.Compare.OnlyDiff = true

		h := newHarness(t, cfg)
		assert.Equal(t, exit.CodeDifferent, h.run())
		assert.NotContains(t, h.stdout.String(), "$.name")
	})

	t.Run("json_report", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig(config.CommandCompare, left, changed)
		cfg.Format = "json"

		h := newHarness(t, cfg)
		assert.Equal(t, exit.CodeDifferent, h.run())

		report, err := tree.ParseJSON(h.stdout.Bytes())
		require.NoError(t, err)

		identical, ok := tree.Child(report, "identical")
		require.True(t, ok)
		assert.Equal(t, tree.Bool(false), identical)

		command, ok := tree.Child(report, "command")
		require.True(t, ok)
		assert.Equal(t, tree.String("compare"), command)
	})

	t.Run("forced_input_format", func(t *testing.T) {
		t.Parallel()

		// YAML content behind a .json name
		mislabeled := writeFile(t, t.TempDir(), "doc.json", "name: svc\nports: [80, 443]\n")

		h := newHarness(t, newConfig(config.CommandCompare, same, mislabeled))
		assert.Equal(t, exit.CodeError, h.run())

		cfg := newConfig(config.CommandCompare, same, mislabeled)
		cfg.Compare.Input = "yaml"

		h = newHarness(t, cfg)
		assert.Equal(t, exit.CodeSame, h.run(), h.stderr.String())
	})
}

func TestRunCompareParseError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := writeFile(t, dir, "good.json", `{"a":1}`)
	bad := writeFile(t, dir, "bad.json", `{"a":`)

	h := newHarness(t, newConfig(config.CommandCompare, good, bad))
	assert.Equal(t, exit.CodeError, h.run())
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "Error: "+bad)
}

func TestRunQuery(t *testing.T) {
	t.Parallel()

	const doc = `{"store":{"book":[{"title":"A","price":8},{"title":"B","price":12}]}}`

	tests := []struct {
		name   string
		expr   string
		modify func(c *config.Config)
		code   int
		want   string
	}{
		{
			name: "values",
			expr: "$.store.book[*].title",
			code: exit.CodeSame,
			want: "\"A\"\n\"B\"\n",
		},
		{
			name:   "with_paths",
			expr:   "$..price",
			modify: func(c *config.Config) { c.Query.Paths = true },
			code:   exit.CodeSame,
			want:   "$.store.book[0].price\t8\n$.store.book[1].price\t12\n",
		},
		{
			name: "no_match",
			expr: "$.store.pen",
			code: exit.CodeSame,
			want: "",
		},
		{
			name:   "fail_empty",
			expr:   "$.store.pen",
			modify: func(c *config.Config) { c.Query.FailEmpty = true },
			code:   exit.CodeDifferent,
			want:   "",
		},
		{
			name:   "rfc9535_filter",
			expr:   "$.store.book[?@.price > 10].title",
			modify: func(c *config.Config) { c.Query.Engine = "rfc9535" },
			code:   exit.CodeSame,
			want:   "\"B\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig(config.CommandQuery, config.Stdin)
			cfg.Expression = tt.expr
			if tt.modify != nil {
				tt.modify(cfg)
			}

			h := newHarness(t, cfg)
			h.runner.SetInput(strings.NewReader(doc))

			assert.Equal(t, tt.code, h.run(), h.stderr.String())
			assert.Equal(t, tt.want, h.stdout.String())
		})
	}
}

func TestRunQueryYAMLFile(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "doc.yaml", "items:\n  - id: 1\n  - id: 2\n")

	cfg := newConfig(config.CommandQuery, file)
	cfg.Expression = "$.items[-1:].id"

	h := newHarness(t, cfg)
	assert.Equal(t, exit.CodeSame, h.run(), h.stderr.String())
	assert.Equal(t, "2\n", h.stdout.String())
}

func TestRunQueryInvalidExpressionSkipsInput(t *testing.T) {
	t.Parallel()

	cfg := newConfig(config.CommandQuery, config.Stdin)
	cfg.Expression = "$.a["

	h := newHarness(t, cfg)
	h.runner.SetInput(failingReader{})

	assert.Equal(t, exit.CodeError, h.run())
	assert.Contains(t, h.stderr.String(), "invalid expression")
	assert.NotContains(t, h.stderr.String(), "stdin must not be read")
}

func TestRunMissingInput(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.json")
	h := newHarness(t, newConfig(config.CommandDiff, missing, missing))

	assert.Equal(t, exit.CodeError, h.run())
	assert.Contains(t, h.stderr.String(), "reading "+missing)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.txt", "a")
	h := newHarness(t, newConfig(config.CommandDiff, file, file))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, exit.CodeError, h.runner.Run(ctx))
	assert.Contains(t, h.stderr.String(), "Interrupted")
	assert.Empty(t, h.stdout.String())
}

func TestRunDebugLogging(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.txt", "a")

	cfg := newConfig(config.CommandDiff, file, file)
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	h := newHarness(t, cfg)
	assert.Equal(t, exit.CodeSame, h.run())

	logs := h.stderr.String()
	assert.Contains(t, logs, `"message":"input read"`)
	assert.Contains(t, logs, `"command":"diff"`)
	assert.NotContains(t, h.stdout.String(), "input read")
}

func TestRunLogFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	file := writeFile(t, dir, "a.txt", "a")
	logFile := filepath.Join(dir, "logs", "dq.log")

	cfg := newConfig(config.CommandDiff, file, file)
	cfg.LogLevel = "debug"
	cfg.LogFile = logFile

	h := newHarness(t, cfg)
	assert.Equal(t, exit.CodeSame, h.run())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"command finished"`)
}

func TestNewInvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := newConfig(config.CommandDiff, "a", "b")
	cfg.LogLevel = "loud"

	r, exitResult := New(cfg)
	assert.Nil(t, r)
	require.NotNil(t, exitResult)
	assert.Equal(t, exit.CodeError, exitResult.ExitCode)
	assert.Contains(t, exitResult.Message, "Error creating runner")
}
