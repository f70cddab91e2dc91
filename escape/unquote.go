// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

// decState is the state of a Decoder's escape scanner.
type decState byte

const (
	decNormal decState = iota
	decEscape
	decUnicode
)

// Decoder incrementally unescapes JSON string content delivered as a
// sequence of fragments, the shape a Sink actually receives it in:
// StringStart/StringCont/StringEnd (and the analogous Name* triple) can
// split a document at any byte, including in the middle of a "\uXXXX"
// escape or even between the backslash and the letter that follows it.
// A one-shot Unquote call over a single fragment cannot see across that
// boundary; Decoder carries a partially-read escape from one Write call
// to the next so a caller assembling a Sink's fragments can decode them
// as they arrive instead of buffering the whole string first.
type Decoder struct {
	out    []byte
	state  decState
	hex    [4]byte
	hexLen int
}

// NewDecoder returns a Decoder ready to accept fragments.
func NewDecoder() *Decoder { return &Decoder{} }

// Write decodes fragment and appends the result to the bytes
// accumulated so far. It never fails on its own account: a fragment
// that ends mid-escape just leaves the Decoder in a non-normal state,
// to be resolved by the next Write or reported by Close.
func (d *Decoder) Write(fragment mem.RO) {
	for i := 0; i < fragment.Len(); i++ {
		b := fragment.At(i)
		switch d.state {
		case decNormal:
			if b == '\\' {
				d.state = decEscape
			} else {
				d.out = append(d.out, b)
			}
		case decEscape:
			d.state = decNormal
			switch b {
			case '"', '\\', '/':
				d.out = append(d.out, b)
			case 'b':
				d.out = append(d.out, '\b')
			case 'f':
				d.out = append(d.out, '\f')
			case 'n':
				d.out = append(d.out, '\n')
			case 'r':
				d.out = append(d.out, '\r')
			case 't':
				d.out = append(d.out, '\t')
			case 'u':
				d.hexLen = 0
				d.state = decUnicode
			default:
				d.out = utf8.AppendRune(d.out, utf8.RuneError)
			}
		case decUnicode:
			d.hex[d.hexLen] = b
			d.hexLen++
			if d.hexLen == len(d.hex) {
				if v, err := parseHex(d.hex[:]); err == nil {
					d.out = utf8.AppendRune(d.out, rune(v))
				} else {
					d.out = utf8.AppendRune(d.out, utf8.RuneError)
				}
				d.state = decNormal
			}
		}
	}
}

// Close finalizes decoding and returns the accumulated bytes. It reports
// an error if the fragments written so far end in the middle of an
// escape sequence, which can only happen if the caller mismatched
// Decoder writes against the Sink's fragment boundaries: a well-formed
// document never splits a string across a StringEnd mid-escape.
func (d *Decoder) Close() ([]byte, error) {
	if d.state != decNormal {
		return nil, errors.New("incomplete escape sequence")
	}
	return d.out, nil
}

// Reset clears the Decoder's accumulated output and scanner state so it
// can be reused to decode another string.
func (d *Decoder) Reset() {
	d.out = d.out[:0]
	d.state = decNormal
	d.hexLen = 0
}

// Unquote decodes a byte slice containing the JSON encoding of a string.
// The input must have the enclosing double quotation marks already
// removed. It is a convenience wrapper around Decoder for a caller that
// already holds the whole string and has no need to decode across
// fragment boundaries.
//
// Escape sequences are replaced with their unescaped equivalents.
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	d := NewDecoder()
	d.Write(src)
	return d.Close()
}

func parseHex(data []byte) (int64, error) {
	var v int64
	for _, b := range data {
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, errors.New("invalid hex digit")
		}
	}
	return v, nil
}
