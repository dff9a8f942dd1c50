// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of string literals.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Decode reports the byte denoted by the escape sequence "\" c, and whether c
// is a recognized escape. Unicode escapes (\u) are not recognized.
func Decode(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Unquote decodes the contents of a string literal. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Unquote
// reports an error for an incomplete or unrecognized escape, including any
// Unicode (\u) escape.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b, ok := Decode(src.At(0))
		if !ok {
			return nil, fmt.Errorf("invalid %q after escape", src.At(0))
		}
		dec = append(dec, b)
		src = src.SliceFrom(1)
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}
