// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"strings"

	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a string literal. Quotation marks, backslashes, and
// control characters with a short escape are escaped, and double quotation
// marks are added.
func Quote(src string) string {
	if !escape.NeedsQuote(mem.S(src)) {
		return `"` + src + `"`
	}
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes a string literal.  Double quotation marks are removed, and
// escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for an incomplete or unrecognized escape sequence.
// Unicode (\u) escapes are not supported.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
