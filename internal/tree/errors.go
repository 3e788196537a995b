package tree

import (
	"errors"
	"fmt"
)

// ErrInputParse reports raw text that could not be decoded into a document.
var ErrInputParse = errors.New("tree: input parse error")

func parseError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputParse, fmt.Sprintf(format, args...))
}
