// Package apperr classifies business failures so HTTP handlers can map them
// to status codes without inspecting message strings.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: the referenced aggregate does not exist.
	KindNotFound
	// KindValidation: a precondition on the arguments or business state is
	// violated; always correctable by the client.
	KindValidation
	// KindConflict: existing state conflicts with the request.
	KindConflict
	// KindInfrastructure: the persistence layer failed; retryable, never a
	// client error.
	KindInfrastructure
)

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

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Infrastructure wraps a storage failure. The cause is preserved for logs;
// Msg is what clients may see.
func Infrastructure(msg string, err error) error {
	return &Error{Kind: KindInfrastructure, Msg: msg, Err: err}
}

// KindOf reports the classification of err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-facing message of a classified error, falling
// back to err.Error() for plain errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// StatusCode maps an error kind to the HTTP status the handlers respond with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
