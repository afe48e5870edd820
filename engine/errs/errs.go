package errs

import (
	"errors"
	"fmt"
)

var (
	ErrParse             = errors.New("parse error")
	ErrEval              = errors.New("evaluation error")
	ErrType              = errors.New("type error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrEmptyBlock        = fmt.Errorf("%w: block has no expressions", ErrEval)
)

// EvalError wraps a failure raised while evaluating a compound expression.
// It matches ErrEval as well as whatever it wraps.
type EvalError struct {
	Op  string
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s in %s: %v", ErrEval, e.Op, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

func (e *EvalError) Is(target error) bool {
	return target == ErrEval
}

// Wrap attaches op to err unless err is nil or already an *EvalError, in which
// case the innermost op is kept.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}
	return &EvalError{Op: op, Err: err}
}

func Parsef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func Undefined(name string) error {
	return fmt.Errorf("%w: '%s'", ErrUndefinedVariable, name)
}
