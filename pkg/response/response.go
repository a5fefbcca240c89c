package response

import (
	"errors"
)

// Error carries the HTTP status a failure should be reported with. Its
// message is what clients see.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// From finds the first *Error in err's chain.
func From(err error) (*Error, bool) {
	var respErr *Error
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}
