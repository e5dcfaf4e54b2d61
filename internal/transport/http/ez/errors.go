package ez

import (
	"context"
	"errors"

	"kind-link-bridge/internal/domain"
	resp "kind-link-bridge/internal/transport/http/response"
)

// AErr carries an explicit client-facing kind out of a handler.
type AErr struct {
	Kind string
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Kind: resp.KindInvalidInput, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Kind: resp.KindUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Kind: resp.KindForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Kind: resp.KindNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Kind: resp.KindInternal, Msg: msg, Err: err}
}

// Classify maps err onto a client-facing kind and message. Anything not
// recognised is an InternalError whose detail stays server-side.
func Classify(err error) (kind, msg string) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Kind == resp.KindInternal {
			return resp.KindInternal, ""
		}
		return ae.Kind, ae.Msg
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return resp.KindDuplicateEmail, ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return resp.KindInvalidCredentials, ""
	case errors.Is(err, domain.ErrInvalidInput):
		return resp.KindInvalidInput, ""
	case errors.Is(err, domain.ErrNotFound):
		return resp.KindNotFound, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return resp.KindUnauthorized, ""
	case errors.Is(err, domain.ErrForbidden):
		return resp.KindForbidden, ""
	case errors.Is(err, context.DeadlineExceeded):
		return resp.KindTimeout, ""
	}
	return resp.KindInternal, ""
}
