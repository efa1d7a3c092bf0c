package resolver

import (
	"errors"
	"fmt"
)

// Code identifies a class of resolution error. Codes are strings so they
// read well in logs and serialize naturally.
type Code string

const (
	CodeUnknownAdapter        Code = "UNKNOWN_ADAPTER"
	CodeInvalidAdapterOptions Code = "INVALID_ADAPTER_OPTIONS"
	CodeInvalidProjectRoot    Code = "INVALID_PROJECT_ROOT"
	CodeInvalidAliasPath      Code = "INVALID_ALIAS_PATH"
	CodeInvalidAliasName      Code = "INVALID_ALIAS_NAME"
)

var (
	ErrUnknownAdapter        = errors.New("unknown adapter")
	ErrInvalidAdapterOptions = errors.New("invalid adapter options")
	ErrInvalidProjectRoot    = errors.New("invalid project root")
	ErrInvalidAliasPath      = errors.New("invalid alias path")
	ErrInvalidAliasName      = errors.New("invalid alias name")
)

var sentinels = map[Code]error{
	CodeUnknownAdapter:        ErrUnknownAdapter,
	CodeInvalidAdapterOptions: ErrInvalidAdapterOptions,
	CodeInvalidProjectRoot:    ErrInvalidProjectRoot,
	CodeInvalidAliasPath:      ErrInvalidAliasPath,
	CodeInvalidAliasName:      ErrInvalidAliasName,
}

// Error is a configuration error naming the offending field. It matches the
// sentinel for its Code with errors.Is.
type Error struct {
	Code  Code
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Field, sentinels[e.Code])
	}
	return fmt.Sprintf("%s: %s: %v", e.Field, sentinels[e.Code], e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel error for e.Code.
func (e *Error) Is(target error) bool {
	return sentinels[e.Code] == target
}

func newError(code Code, field string, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Err: fmt.Errorf(format, args...)}
}

// CodeOf returns the Code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Code, true
	}
	return "", false
}
