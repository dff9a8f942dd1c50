// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
)

// Class is the category of a parsing failure.
type Class string

// Constants defining the valid Class values.
const (
	SourceError       Class = "source error"        // the underlying input could not be read
	LexError          Class = "lexical error"       // malformed literal, string, or escape
	NumberFormatError Class = "number format error" // malformed numeric literal
	ParseError        Class = "parse error"         // structural error in an object, array, or document
)

// Sentinel errors for use with errors.Is. An *Error matches the sentinel for
// its class.
var (
	ErrSource       = errors.New(string(SourceError))
	ErrLex          = errors.New(string(LexError))
	ErrNumberFormat = errors.New(string(NumberFormatError))
	ErrParse        = errors.New(string(ParseError))
)

// Error is the concrete type of errors reported by the reader and parsers in
// this module.
type Error struct {
	Class   Class
	Offset  int64 // byte offset of the input at the point of failure
	Message string

	Cause error // the underlying error, if any
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Class, e.Offset, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel error for the class of e.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSource:
		return e.Class == SourceError
	case ErrLex:
		return e.Class == LexError
	case ErrNumberFormat:
		return e.Class == NumberFormatError
	case ErrParse:
		return e.Class == ParseError
	}
	return false
}

// Errorf constructs an *Error of the given class at offset. If args contains
// an error wrapped with %w, it is recorded as the cause.
func Errorf(class Class, offset int64, msg string, args ...any) *Error {
	err := fmt.Errorf(msg, args...)
	return &Error{
		Class:   class,
		Offset:  offset,
		Message: err.Error(),
		Cause:   errors.Unwrap(err),
	}
}

// ClassOf reports the class of err, if err is or wraps an *Error.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return "", false
}
