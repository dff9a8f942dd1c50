// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"
	"math"

	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Serialize renders v as single-line JSON text with no insignificant
// whitespace. String contents are written as stored, without re-applying
// escapes; use a Formatter with EscapeStrings set for text that can always be
// parsed back.
func Serialize(v Value) string { return string(appendJSON(nil, v, false)) }

// A Formatter carries settings for rendering values as text.
// A zero value is ready for use and renders the same text as Serialize.
type Formatter struct {
	// If true, quotation marks, backslashes, and control characters in
	// strings and object keys are escaped.
	EscapeStrings bool
}

// Format renders v to w using the settings from f.
func (f Formatter) Format(w io.Writer, v Value) error {
	_, err := w.Write(appendJSON(nil, v, f.EscapeStrings))
	return err
}

// FormatToString renders v to a string using the settings from f.
func (f Formatter) FormatToString(v Value) string {
	return string(appendJSON(nil, v, f.EscapeStrings))
}

func appendJSON(buf []byte, v Value, esc bool) []byte {
	switch t := v.(type) {
	case Object:
		buf = append(buf, '{')
		for i, m := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendMember(buf, m, esc)
		}
		return append(buf, '}')
	case Array:
		buf = append(buf, '[')
		for i, elt := range t {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, elt, esc)
		}
		return append(buf, ']')
	case String:
		return appendString(buf, string(t), esc)
	case Number:
		return appendNumber(buf, t)
	case Bool, nullValue:
		return append(buf, t.JSON()...)
	case nil:
		return append(buf, "null"...)
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func appendMember(buf []byte, m *Member, esc bool) []byte {
	buf = appendString(buf, m.Key, esc)
	buf = append(buf, ':')
	return appendJSON(buf, m.Value, esc)
}

func appendString(buf []byte, s string, esc bool) []byte {
	buf = append(buf, '"')
	if esc {
		buf = escape.AppendQuote(buf, mem.S(s))
	} else {
		buf = append(buf, s...)
	}
	return append(buf, '"')
}

// appendNumber renders n. Non-finite values have no JSON representation and
// are rendered as null.
func appendNumber(buf []byte, n Number) []byte {
	if !n.IsInt() {
		if f := n.Float64(); math.IsInf(f, 0) || math.IsNaN(f) {
			return append(buf, "null"...)
		}
	}
	return append(buf, n.Number.String()...)
}
