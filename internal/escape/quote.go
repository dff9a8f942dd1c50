// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// controlEsc maps bytes that require escaping to their escape letter.
var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'"':  '"',
	'\\': '\\',
}

// Quote encodes src for inclusion in a string literal, without the enclosing
// quotation marks. Only the characters that have a two-character escape are
// rewritten; all other bytes, including other control bytes and multi-byte
// UTF-8 sequences, are copied unchanged so that the result can be read back
// by a parser that does not decode \u escapes.
func Quote(src mem.RO) []byte {
	return AppendQuote(make([]byte, 0, src.Len()+2), src)
}

// AppendQuote appends the quoted form of src to buf, as Quote does, and
// returns the extended buffer. If src needs no escaping it is appended as-is.
func AppendQuote(buf []byte, src mem.RO) []byte {
	if !NeedsQuote(src) {
		return mem.Append(buf, src)
	}
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		if int(b) < len(controlEsc) && controlEsc[b] != 0 {
			buf = append(buf, '\\', controlEsc[b])
		} else {
			buf = append(buf, b)
		}
	}
	return buf
}

// NeedsQuote reports whether Quote would change src.
func NeedsQuote(src mem.RO) bool {
	for i := 0; i < src.Len(); i++ {
		if b := src.At(i); int(b) < len(controlEsc) && controlEsc[b] != 0 {
			return true
		}
	}
	return false
}
