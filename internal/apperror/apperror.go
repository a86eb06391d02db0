package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies failures that can reach a caller.
type Kind string

const (
	KindMissingInput      Kind = "MISSING_INPUT"
	KindPayloadTooLarge   Kind = "PAYLOAD_TOO_LARGE"
	KindInvalidDocument   Kind = "INVALID_DOCUMENT"
	KindNoTextFound       Kind = "NO_TEXT_FOUND"
	KindInsufficientInput Kind = "INSUFFICIENT_INPUT"
	KindUpstreamFailure   Kind = "UPSTREAM_FAILURE"
	KindTimeout           Kind = "TIMEOUT"
	KindInternal          Kind = "INTERNAL"
)

// Messages shown to callers verbatim.
const (
	MsgNoPDF             = "No PDF file uploaded"
	MsgNoText            = "No text extracted from PDF"
	MsgInsufficientInput = "Combined text must be ≥100 characters"
)

// Error is a classified failure carrying the message a caller should see.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func MissingInput(message string) *Error {
	return &Error{Kind: KindMissingInput, Message: message}
}

func PayloadTooLarge(limitBytes int64) *Error {
	return &Error{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("File too large (max %dMB)", limitBytes/(1024*1024)),
	}
}

// InvalidDocument forwards the parser message, as callers rely on it to
// tell a corrupt upload from a server fault.
func InvalidDocument(cause error) *Error {
	return &Error{Kind: KindInvalidDocument, Message: cause.Error(), Cause: cause}
}

func NoTextFound() *Error {
	return &Error{Kind: KindNoTextFound, Message: MsgNoText}
}

func InsufficientInput() *Error {
	return &Error{Kind: KindInsufficientInput, Message: MsgInsufficientInput}
}

// Upstream wraps a provider failure; the provider message is passed through.
func Upstream(cause error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: cause.Error(), Cause: cause}
}

func Timeout(after time.Duration, cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("Summarization timed out after %v", after),
		Cause:   cause,
	}
}

// KindOf reports the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to the status code of its JSON envelope.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindMissingInput, KindNoTextFound, KindInsufficientInput:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		// InvalidDocument and UpstreamFailure stay 500 like unclassified errors.
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
