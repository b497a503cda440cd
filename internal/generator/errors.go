package generator

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindIo Kind = iota + 1
	KindCommandFailed
	KindInvalidProjectName
	KindBunNotInstalled
	KindTemplateCopyFailed
	KindDependencyFailed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIo:
		return "Io"
	case KindCommandFailed:
		return "CommandFailed"
	case KindInvalidProjectName:
		return "InvalidProjectName"
	case KindBunNotInstalled:
		return "BunNotInstalled"
	case KindTemplateCopyFailed:
		return "TemplateCopyFailed"
	case KindDependencyFailed:
		return "DependencyFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by every generation step. Only the fields
// relevant to Kind are set. Message carries text produced by the external
// tool verbatim.
type Error struct {
	Kind       Kind
	Command    string
	Message    string
	Name       string
	Dependency string
	Err        error
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrIo                 = &Error{Kind: KindIo}
	ErrCommandFailed      = &Error{Kind: KindCommandFailed}
	ErrInvalidProjectName = &Error{Kind: KindInvalidProjectName}
	ErrBunNotInstalled    = &Error{Kind: KindBunNotInstalled}
	ErrTemplateCopyFailed = &Error{Kind: KindTemplateCopyFailed}
	ErrDependencyFailed   = &Error{Kind: KindDependencyFailed}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindIo:
		return fmt.Sprintf("IO error: %v", e.Err)
	case KindCommandFailed:
		return fmt.Sprintf("Command '%s' failed: %s", e.Command, e.Message)
	case KindInvalidProjectName:
		return fmt.Sprintf("Invalid project name '%s': must not be empty and must not contain '/', '\\' or null bytes", e.Name)
	case KindBunNotInstalled:
		return "Bun is not installed. Please install Bun globally from https://bun.sh"
	case KindTemplateCopyFailed:
		return fmt.Sprintf("Failed to copy templates: %s", e.Message)
	case KindDependencyFailed:
		return fmt.Sprintf("Failed to install dependency '%s': %s", e.Dependency, e.Message)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches target when it is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IoError wraps a filesystem or process I/O failure.
func IoError(err error) *Error {
	return &Error{Kind: KindIo, Err: err}
}

// CommandFailed reports a subcommand that exited non-zero.
func CommandFailed(command, message string) *Error {
	return &Error{Kind: KindCommandFailed, Command: command, Message: message}
}

// InvalidProjectName reports a rejected project name.
func InvalidProjectName(name string) *Error {
	return &Error{Kind: KindInvalidProjectName, Name: name}
}

// BunNotInstalled reports that the tool is unavailable; cause may be nil.
func BunNotInstalled(cause error) *Error {
	return &Error{Kind: KindBunNotInstalled, Err: cause}
}

// TemplateCopyFailed reports a template merge failure.
func TemplateCopyFailed(message string, cause error) *Error {
	return &Error{Kind: KindTemplateCopyFailed, Message: message, Err: cause}
}

// DependencyFailed reports a single dependency that could not be added.
func DependencyFailed(dependency, message string, cause error) *Error {
	return &Error{Kind: KindDependencyFailed, Dependency: dependency, Message: message, Err: cause}
}
