package jsonpath

import "errors"

// ErrSyntax indicates a JSONPath expression could not be compiled.
var ErrSyntax = errors.New("jsonpath: syntax error")
