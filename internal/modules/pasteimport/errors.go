package pasteimport

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed import. It is also the outcome label recorded for the call.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindProviderFailure   Kind = "provider_failure"
	KindMalformedPayload  Kind = "malformed_payload"
	KindInvalidShape      Kind = "invalid_shape"
	KindUnexpected        Kind = "unexpected"
)

var (
	ErrMissingCredential = errors.New("Missing GEMINI_API_KEY")
	ErrInvalidShape      = errors.New("Invalid Gemini JSON shape")
	ErrDuplicateLocation = errors.New("Duplicate location in Gemini response")
)

// providerFailedMessage is relayed when the model API fails with an empty body.
const providerFailedMessage = "Gemini request failed"

// Error is returned by Service.Import. Message is the plain-text body shown to the caller.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, status int, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: err.Error(), Err: err}
}

func internalError(kind Kind, err error) *Error {
	return newError(kind, http.StatusInternalServerError, err)
}
