// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings. It is
// promoted out of the core jsax package because a Sink only ever sees the
// raw, unescaped bytes between the quotes (design deliberately keeps
// escape processing out of the recognition machine); a Sink that wants
// decoded text calls Unquote itself, and a caller assembling JSON output
// calls Quote.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEscape holds the one-letter JSON escape for each control byte that
// has one ('\b', '\f', '\n', '\r', '\t'); every other byte below ' ' falls
// back to a generic \u00XX escape.
var shortEscape = [' ']string{
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

const hexDigit = "0123456789abcdef"

// Quote encodes src as the body of a JSON string, escaping control
// characters, quotes, backslashes, and a handful of code points that are
// legal but awkward to embed unescaped (U+2028, U+2029, the replacement
// rune). The result does not include the surrounding double quotes.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() > 0 {
		b := src.At(0)
		if b < utf8.RuneSelf {
			switch {
			case b < ' ':
				if esc := shortEscape[b]; esc != "" {
					buf = append(buf, esc...)
				} else {
					buf = appendUnicodeEscape(buf, rune(b))
				}
			case b == '\\' || b == '"':
				buf = append(buf, '\\', b)
			default:
				buf = append(buf, b)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := mem.DecodeRune(src)
		switch r {
		case utf8.RuneError, '\u2028', '\u2029':
			buf = appendUnicodeEscape(buf, r)
		default:
			var rbuf [utf8.UTFMax]byte
			k := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:k]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

func appendUnicodeEscape(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&0xf], hexDigit[(r>>8)&0xf], hexDigit[(r>>4)&0xf], hexDigit[r&0xf])
}

// QuoteString is a convenience wrapper for Quote that also adds the
// enclosing double quotes and returns a string.
func QuoteString(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = append(buf, Quote(mem.S(src))...)
	buf = append(buf, '"')
	return string(buf)
}
