// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"bufio"
	"io"
)

// A Char is a single byte of input, or EOF.
type Char int

// EOF is the Char reported when the input is exhausted. It is distinct from
// every byte value.
const EOF Char = -1

func (c Char) String() string {
	if c == EOF {
		return "end of input"
	}
	return string(rune(c))
}

// A Reader delivers single characters from an input stream.  There is no way
// to unread a character: a caller that needs one character of lookahead keeps
// the character it read and passes it on to the next step.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r   *bufio.Reader
	pos int64 // bytes consumed
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Offset reports the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.pos }

// ReadChar returns the next character of the input, or EOF. A non-nil error
// indicates the underlying source failed, and has class SourceError.
func (r *Reader) ReadChar() (Char, error) {
	b, err := r.r.ReadByte()
	if err == io.EOF {
		return EOF, nil
	} else if err != nil {
		return EOF, Errorf(SourceError, r.pos, "read failed: %w", err)
	}
	r.pos++
	return Char(b), nil
}

// ReadCharSkipSpace discards whitespace and returns the first character that
// is not whitespace, or EOF.
func (r *Reader) ReadCharSkipSpace() (Char, error) {
	for {
		c, err := r.ReadChar()
		if err != nil || !IsSpace(c) {
			return c, err
		}
	}
}

// readDigits reads a run of decimal digits, calling f for each one. It
// returns the number of digits read and the first character that is not a
// digit.
func (r *Reader) readDigits(f func(d int)) (int, Char, error) {
	var n int
	for {
		c, err := r.ReadChar()
		if err != nil {
			return n, c, err
		} else if !IsDigit(c) {
			return n, c, nil
		}
		f(int(c - '0'))
		n++
	}
}

func (r *Reader) failf(class Class, msg string, args ...any) error {
	return Errorf(class, r.pos, msg, args...)
}

// IsSpace reports whether c is a whitespace character.
func IsSpace(c Char) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// IsDigit reports whether c is a decimal digit.
func IsDigit(c Char) bool { return '0' <= c && c <= '9' }
