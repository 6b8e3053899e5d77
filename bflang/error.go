package bflang

import "errors"

// ErrUnbalancedParens reports a ] executed with no open loop.
var ErrUnbalancedParens = errors.New("unbalanced parens")

// ReadError wraps a failure of the input collaborator.
type ReadError struct {
	Err error
}

func (e ReadError) Error() string {
	return "read error: " + e.Err.Error()
}

func (e ReadError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failure of the output collaborator. Callers decide
// whether a given write failure, such as a broken pipe, is fatal.
type WriteError struct {
	Err error
}

func (e WriteError) Error() string {
	return "write error: " + e.Err.Error()
}

func (e WriteError) Unwrap() error {
	return e.Err
}
