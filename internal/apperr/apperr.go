package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so transport adapters can map it to a status code
// and operators can alert on specific failure classes.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindPermissionDenied
	KindNotFound
	KindInvalidArgument
	// Generation pipeline failure classes. These are distinct so callers can
	// tell "the AI declined or answered garbage" apart from "the endpoint is
	// unreachable or unconfigured".
	KindGenerationUnavailable
	KindQuotaExhausted
	KindEmptyResponse
	KindMalformedResponse
	KindInvalidIdeaStructure
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindGenerationUnavailable:
		return "generation_unavailable"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	case KindInvalidIdeaStructure:
		return "invalid_idea_structure"
	default:
		return "internal"
	}
}

// Error is a kinded error. Wrap with New/Newf or Wrap; inspect with KindOf.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, walking the wrap chain. Unclassified errors
// are internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to the status code the REST surface returns.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindGenerationUnavailable:
		return http.StatusPreconditionFailed
	case KindQuotaExhausted:
		return http.StatusTooManyRequests
	case KindEmptyResponse, KindMalformedResponse, KindInvalidIdeaStructure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
