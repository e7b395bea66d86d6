package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindIO covers transient file and clipboard failures. The operation is
	// abandoned and logged; nothing is shown to the user.
	KindIO Kind = "io"
	// KindMalformed marks persisted data that could not be parsed. Callers
	// treat it as absent.
	KindMalformed Kind = "malformed"
	// KindExternal covers picker, launcher and autostart failures.
	KindExternal Kind = "external"
	// KindFatal errors close the window and hand over to the restart supervisor.
	KindFatal Kind = "fatal"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

// Error reports the cause for logs. User-facing text comes from
// PublicMessage.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
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
	case KindIO:
		return "File or clipboard operation failed."
	case KindMalformed:
		return "Saved data is unreadable and was ignored."
	case KindExternal:
		return "External program failed."
	case KindFatal:
		return "Unrecoverable internal error."
	default:
		return "Operation failed."
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

func IO(err error) error {
	return New(KindIO, "", err)
}

func Malformed(err error) error {
	return New(KindMalformed, "", err)
}

func External(err error) error {
	return New(KindExternal, "", err)
}

func Fatal(err error) error {
	return New(KindFatal, "", err)
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
		if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
			return msg
		}
		return defaultSafeMessage(e.Kind)
	}
	return err.Error()
}

func IsFatal(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindFatal
}
