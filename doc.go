// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements the character-level layer of a JSON parser: a
// single-character stream reader, lexical primitives for constants and
// strings, and a numeric literal parser.
//
// # Reading
//
// The Reader type delivers one character at a time from an io.Reader.  There
// is no unread operation. Instead, every step of a parse that needs one
// character of lookahead returns that character, and the caller passes it on
// to the next step:
//
//	r := jvalue.NewReader(input)
//	c, err := r.ReadCharSkipSpace()
//	if err != nil {
//	   log.Fatalf("Read failed: %v", err)
//	}
//	switch jvalue.Classify(c) {
//	case jvalue.KindNumber:
//	   n, next, err := r.ReadNumber(c)
//	   // ... next is the first character after the number
//	}
//
// At the end of the input, the Reader reports the character EOF with no
// error. A non-nil error from the Reader always indicates a failure of the
// underlying source.
//
// # Numbers
//
// ReadNumber decides whether a literal is an integer or a floating-point
// value: a literal with a fraction or a negative exponent is floating-point,
// otherwise it is an exact integer. Once a literal is floating-point it does
// not revert to an integer.
//
//	Literal | Result
//	------- | ------------
//	5       | Int(5)
//	5.0     | Float(5)
//	5e2     | Int(500)
//	5e-1    | Float(0.5)
//
// # Errors
//
// Errors reported by this package and by package ast have concrete type
// *jvalue.Error, and carry a Class: SourceError, LexError, NumberFormatError,
// or ParseError. Use errors.Is with ErrSource, ErrLex, ErrNumberFormat, or
// ErrParse to test the class of an error.
//
// The tree model, value parser, and printer are in package ast.
package jvalue
