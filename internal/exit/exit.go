package exit

import (
	"fmt"
	"io"
	"os"
)

// Process exit codes, following diff(1).
const (
	CodeSame      = 0 // inputs match, or the query produced output
	CodeDifferent = 1 // inputs differ, or --fail-empty found no match
	CodeError     = 2 // bad arguments, unreadable input or invalid expression
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSame,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 2.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
