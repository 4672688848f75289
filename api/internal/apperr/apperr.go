package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures of the analysis pipeline.
type Kind string

const (
	KindConfiguration           Kind = "configuration"
	KindInvalidInput            Kind = "invalid_input"
	KindUpstream                Kind = "upstream"
	KindInvalidUpstreamResponse Kind = "invalid_upstream_response"
	KindMalformedAnalysis       Kind = "malformed_analysis"
	KindIncompleteAnalysis      Kind = "incomplete_analysis"
	KindInvalidAnalysis         Kind = "invalid_analysis"
	KindInternal                Kind = "internal"
)

// Error is a classified failure. Details carries the diagnostic payload that is
// echoed to the caller (raw text, parse error, expected keys, ...).
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// With adds a diagnostic field and returns e.
func (e *Error) With(key string, v any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = v
	return e
}

func newError(kind Kind, status int, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, StatusCode: status, Cause: cause}
}

// Configuration reports a missing credential or similar deployment problem.
func Configuration(msg string) *Error {
	return newError(KindConfiguration, http.StatusInternalServerError, msg, nil)
}

func InvalidInput(msg string, cause error) *Error {
	return newError(KindInvalidInput, http.StatusBadRequest, msg, cause)
}

// Upstream carries the upstream status and message verbatim.
func Upstream(status int, msg string, cause error) *Error {
	return newError(KindUpstream, http.StatusInternalServerError, msg, cause).
		With("status", status)
}

func InvalidUpstreamResponse(msg string, raw any) *Error {
	return newError(KindInvalidUpstreamResponse, http.StatusInternalServerError, msg, nil).
		With("rawData", raw)
}

func MalformedAnalysis(raw string, cause error) *Error {
	e := newError(KindMalformedAnalysis, http.StatusInternalServerError, "model reply is not valid JSON", cause).
		With("rawResponse", raw)
	if cause != nil {
		e.With("parseError", cause.Error())
	}
	return e
}

func IncompleteAnalysis(received map[string]any, expected, missing []string) *Error {
	return newError(KindIncompleteAnalysis, http.StatusInternalServerError, "analysis is missing required keys", nil).
		With("receivedData", received).
		With("expectedKeys", expected).
		With("missingKeys", missing)
}

func InvalidAnalysis(received map[string]any, violations []string) *Error {
	return newError(KindInvalidAnalysis, http.StatusInternalServerError, "analysis values are out of range", nil).
		With("receivedData", received).
		With("violations", violations)
}

func Internal(msg string, cause error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, msg, cause)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode extracts the HTTP status code from an error.
func StatusCode(err error) int {
	if e, ok := As(err); ok && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
