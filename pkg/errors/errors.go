// Package errors defines the closed error taxonomy used across jjz.
//
// Every fallible operation in the core returns (or wraps) an *Error so that
// the output layer and the CLI can map failures to a stable exit code and a
// stable JSON error code without re-deriving the mapping at each call site.
package errors

import "fmt"

// Type identifies one variant of the closed error taxonomy.
type Type string

// Taxonomy variants, see SPEC_FULL.md §7.
const (
	ErrInvalidName            Type = "invalid_name"
	ErrInvalidPath            Type = "invalid_path"
	ErrDuplicateName          Type = "duplicate_name"
	ErrInvalidTransition      Type = "invalid_transition"
	ErrSessionNotFound        Type = "session_not_found"
	ErrTabNotFound            Type = "tab_not_found"
	ErrVcsNotInstalled        Type = "vcs_not_installed"
	ErrVcsTooOld              Type = "vcs_too_old"
	ErrVcsError               Type = "vcs_error"
	ErrMultiplexerError       Type = "multiplexer_error"
	ErrStoreError             Type = "store_error"
	ErrWorkspaceRemovalFailed Type = "workspace_removal_failed"
	ErrStoreLocked            Type = "store_locked"
	ErrUnknown                Type = "unknown"
)

// Error is the tagged error type carried across every package boundary.
type Error struct {
	Type       Type
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode maps the error's Type to the stable exit-code taxonomy of §7.
func (e *Error) ExitCode() int {
	switch e.Type {
	case ErrInvalidName, ErrInvalidPath, ErrDuplicateName:
		return 1
	case ErrVcsError, ErrMultiplexerError, ErrStoreError, ErrWorkspaceRemovalFailed, ErrStoreLocked:
		return 2
	case ErrSessionNotFound, ErrTabNotFound, ErrVcsNotInstalled, ErrVcsTooOld:
		return 3
	case ErrInvalidTransition:
		return 4
	default:
		return 2
	}
}

// NewError constructs an Error of the given type.
func NewError(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// WithSuggestion attaches a remediation hint and returns the receiver for chaining.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// NewInvalidNameError constructs an ErrInvalidName error.
func NewInvalidNameError(message string, cause error) *Error {
	return NewError(ErrInvalidName, message, cause)
}

// NewInvalidPathError constructs an ErrInvalidPath error.
func NewInvalidPathError(message string, cause error) *Error {
	return NewError(ErrInvalidPath, message, cause)
}

// NewDuplicateNameError constructs an ErrDuplicateName error.
func NewDuplicateNameError(message string, cause error) *Error {
	return NewError(ErrDuplicateName, message, cause)
}

// NewInvalidTransitionError constructs an ErrInvalidTransition error.
func NewInvalidTransitionError(message string, cause error) *Error {
	return NewError(ErrInvalidTransition, message, cause)
}

// NewSessionNotFoundError constructs an ErrSessionNotFound error.
func NewSessionNotFoundError(message string, cause error) *Error {
	return NewError(ErrSessionNotFound, message, cause)
}

// NewTabNotFoundError constructs an ErrTabNotFound error.
func NewTabNotFoundError(message string, cause error) *Error {
	return NewError(ErrTabNotFound, message, cause)
}

// NewVcsNotInstalledError constructs an ErrVcsNotInstalled error.
func NewVcsNotInstalledError(message string, cause error) *Error {
	return NewError(ErrVcsNotInstalled, message, cause)
}

// NewVcsTooOldError constructs an ErrVcsTooOld error.
func NewVcsTooOldError(message string, cause error) *Error {
	return NewError(ErrVcsTooOld, message, cause)
}

// NewVcsError constructs an ErrVcsError error.
func NewVcsError(message string, cause error) *Error {
	return NewError(ErrVcsError, message, cause)
}

// NewMultiplexerError constructs an ErrMultiplexerError error.
func NewMultiplexerError(message string, cause error) *Error {
	return NewError(ErrMultiplexerError, message, cause)
}

// NewStoreError constructs an ErrStoreError error.
func NewStoreError(message string, cause error) *Error {
	return NewError(ErrStoreError, message, cause)
}

// NewWorkspaceRemovalFailedError constructs an ErrWorkspaceRemovalFailed error.
func NewWorkspaceRemovalFailedError(message string, cause error) *Error {
	return NewError(ErrWorkspaceRemovalFailed, message, cause)
}

// NewStoreLockedError constructs an ErrStoreLocked error.
func NewStoreLockedError(message string, cause error) *Error {
	return NewError(ErrStoreLocked, message, cause)
}

// NewUnknownError constructs an ErrUnknown error.
func NewUnknownError(message string, cause error) *Error {
	return NewError(ErrUnknown, message, cause)
}

func is(err error, t Type) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Type == t
}

// IsInvalidName reports whether err is an ErrInvalidName.
func IsInvalidName(err error) bool { return is(err, ErrInvalidName) }

// IsInvalidPath reports whether err is an ErrInvalidPath.
func IsInvalidPath(err error) bool { return is(err, ErrInvalidPath) }

// IsDuplicateName reports whether err is an ErrDuplicateName.
func IsDuplicateName(err error) bool { return is(err, ErrDuplicateName) }

// IsInvalidTransition reports whether err is an ErrInvalidTransition.
func IsInvalidTransition(err error) bool { return is(err, ErrInvalidTransition) }

// IsSessionNotFound reports whether err is an ErrSessionNotFound.
func IsSessionNotFound(err error) bool { return is(err, ErrSessionNotFound) }

// IsTabNotFound reports whether err is an ErrTabNotFound.
func IsTabNotFound(err error) bool { return is(err, ErrTabNotFound) }

// IsVcsNotInstalled reports whether err is an ErrVcsNotInstalled.
func IsVcsNotInstalled(err error) bool { return is(err, ErrVcsNotInstalled) }

// IsVcsTooOld reports whether err is an ErrVcsTooOld.
func IsVcsTooOld(err error) bool { return is(err, ErrVcsTooOld) }

// IsVcsError reports whether err is an ErrVcsError.
func IsVcsError(err error) bool { return is(err, ErrVcsError) }

// IsMultiplexerError reports whether err is an ErrMultiplexerError.
func IsMultiplexerError(err error) bool { return is(err, ErrMultiplexerError) }

// IsStoreError reports whether err is an ErrStoreError.
func IsStoreError(err error) bool { return is(err, ErrStoreError) }

// IsWorkspaceRemovalFailed reports whether err is an ErrWorkspaceRemovalFailed.
func IsWorkspaceRemovalFailed(err error) bool { return is(err, ErrWorkspaceRemovalFailed) }

// IsStoreLocked reports whether err is an ErrStoreLocked.
func IsStoreLocked(err error) bool { return is(err, ErrStoreLocked) }

// IsUnknown reports whether err is an ErrUnknown.
func IsUnknown(err error) bool { return is(err, ErrUnknown) }
