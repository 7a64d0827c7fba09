package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound                Kind = "NotFound"
	KindForbidden               Kind = "Forbidden"
	KindUnauthorized            Kind = "Unauthorized"
	KindValidation              Kind = "Validation"
	KindConflict                Kind = "Conflict"
	KindUnsupportedFormat       Kind = "UnsupportedFormat"
	KindExtractionFailure       Kind = "ExtractionFailure"
	KindInvalidQuestion         Kind = "InvalidQuestion"
	KindAnswerProcessingFailure Kind = "AnswerProcessingFailure"
	KindInvalidStatus           Kind = "InvalidStatus"
	KindInvalidTransition       Kind = "InvalidTransition"
	KindProviderFailure         Kind = "ProviderFailure"
	KindRenderFailure           Kind = "RenderFailure"
	KindInternal                Kind = "Internal"
)

// Error is a domain error with a stable kind and a message safe to show to
// the caller. Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Message returns the caller-facing message; internal errors never leak
// their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation, KindInvalidQuestion, KindInvalidStatus:
		return http.StatusBadRequest
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case KindExtractionFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
