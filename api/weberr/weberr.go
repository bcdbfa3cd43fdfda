// Package weberr decorates errors with what the HTTP layer needs to report
// them: a response body with its status, and extra log fields.
package weberr

import "errors"

// Opt decorates an error.
type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse attaches the body and status written for err.
func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches fields logged alongside err.
func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// Response returns the outermost response attached to err's chain.
func Response(err error) (body any, status int, ok bool) {
	var re *responseError
	if !errors.As(err, &re) {
		return nil, 0, false
	}
	return re.body, re.status, true
}

// Fields merges the log fields attached anywhere in err's chain. Outer
// decorations win on key collisions.
func Fields(err error) (map[string]any, bool) {
	var merged map[string]any
	for err != nil {
		if fe, ok := err.(*fieldsError); ok {
			if merged == nil {
				merged = make(map[string]any, len(fe.fields))
			}
			for k, v := range fe.fields {
				if _, seen := merged[k]; !seen {
					merged[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return merged, merged != nil
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Unwrap() error { return e.error }

type fieldsError struct {
	error
	fields map[string]any
}

func (e *fieldsError) Unwrap() error { return e.error }
