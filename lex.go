// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"bytes"

	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Kind is the type of a value, as determined by its first character.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindInvalid Kind = iota // not the start of any value
	KindBool                // true or false
	KindObject              // { ... }
	KindArray               // [ ... ]
	KindNumber              // integer or floating-point number
	KindString              // quoted string
	KindNull                // null
)

var kindStr = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindObject:  "object",
	KindArray:   "array",
	KindNumber:  "number",
	KindString:  "string",
	KindNull:    "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[KindInvalid]
	}
	return kindStr[k]
}

// Classify reports the kind of value that begins with c.
func Classify(c Char) Kind {
	switch {
	case c == 't' || c == 'f':
		return KindBool
	case c == '{':
		return KindObject
	case c == '[':
		return KindArray
	case c == '-' || IsDigit(c):
		return KindNumber
	case c == '"':
		return KindString
	case c == 'n':
		return KindNull
	}
	return KindInvalid
}

// ReadBool reads the remainder of a Boolean constant whose first character
// first has already been consumed. No character after the constant is
// consumed.
func (r *Reader) ReadBool(first Char) (bool, error) {
	switch first {
	case 't':
		return true, r.readLiteral("true")
	case 'f':
		return false, r.readLiteral("false")
	}
	return false, r.failf(LexError, "unexpected %q at start of bool", first)
}

// ReadNull reads the remainder of a null constant whose first character first
// has already been consumed. No character after the constant is consumed.
func (r *Reader) ReadNull(first Char) error {
	if first != 'n' {
		return r.failf(LexError, "unexpected %q at start of null", first)
	}
	return r.readLiteral("null")
}

// readLiteral reads the characters of want following its first, and reports
// an error if they do not match exactly.
func (r *Reader) readLiteral(want string) error {
	var buf [8]byte
	buf[0] = want[0]
	n := 1
	for n < len(want) {
		c, err := r.ReadChar()
		if err != nil {
			return err
		} else if c == EOF {
			break
		}
		buf[n] = byte(c)
		n++
		if buf[n-1] != want[n-1] {
			break
		}
	}
	if got := mem.B(buf[:n]); !got.Equal(mem.S(want)) {
		return r.failf(LexError, "unknown constant %q, want %q", got.StringCopy(), want)
	}
	return nil
}

// ReadString reads the remainder of a quoted string whose opening quotation
// mark has already been consumed, through the closing quotation mark. Escape
// sequences are replaced by the characters they denote.
//
// The contents are accumulated in buf, which is reset first; the returned
// string is a copy of exactly the decoded contents.
func (r *Reader) ReadString(buf *bytes.Buffer) (string, error) {
	buf.Reset()
	for {
		c, err := r.ReadChar()
		if err != nil {
			return "", err
		}
		switch c {
		case EOF:
			return "", r.failf(LexError, "unterminated string")
		case '"':
			return buf.String(), nil
		case '\\':
			e, err := r.ReadChar()
			if err != nil {
				return "", err
			} else if e == EOF {
				return "", r.failf(LexError, "incomplete escape sequence")
			} else if e == 'u' {
				return "", r.failf(LexError, `unsupported Unicode escape "\u"`)
			}
			b, ok := escape.Decode(byte(e))
			if !ok {
				return "", r.failf(LexError, "invalid %q after escape", e)
			}
			buf.WriteByte(b)
		default:
			buf.WriteByte(byte(c))
		}
	}
}
