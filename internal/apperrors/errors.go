package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindEmptyInput Kind = "empty_input"
	KindTransient  Kind = "transient"
	KindRateLimit  Kind = "rate_limit"
	KindAuth       Kind = "auth"
	KindBadRequest Kind = "bad_request"
	KindValidation Kind = "validation"
)

// Generic messages for schema violations. They never carry parser output.
const (
	MsgEmptyResponse   = "Empty response from the translation service."
	MsgInvalidResponse = "Invalid response from the translation service."
)

type Error struct {
	Kind Kind
	// SafeMessage is what the user sees and what the logs print.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindEmptyInput:
		return "Input text is empty."
	case KindTransient:
		return "Temporary upstream error. Please try again."
	case KindRateLimit:
		return "Rate limit exceeded. Please try again later."
	case KindAuth:
		return "Authentication failed. Please verify your API key and permissions."
	case KindBadRequest:
		return "Request rejected by upstream API."
	case KindValidation:
		return MsgInvalidResponse
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func EmptyInput() error {
	return New(KindEmptyInput, "", nil)
}

func Transient(err error) error {
	return New(KindTransient, "", err)
}

func RateLimit(err error) error {
	return New(KindRateLimit, "", err)
}

func Auth(err error) error {
	return New(KindAuth, "", err)
}

func BadRequest(err error) error {
	return New(KindBadRequest, "", err)
}

// EmptyResponse reports a reply that carried no payload at all.
func EmptyResponse(err error) error {
	return New(KindValidation, MsgEmptyResponse, err)
}

// InvalidResponse reports a reply that did not match the declared schema.
func InvalidResponse(err error) error {
	return New(KindValidation, MsgInvalidResponse, err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsServiceError reports failures of the external call itself
// (network, auth, quota, server side).
func IsServiceError(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	switch kind {
	case KindTransient, KindRateLimit, KindAuth, KindBadRequest:
		return true
	}
	return false
}

func IsSchemaViolation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}

func IsEmptyInput(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindEmptyInput
}
