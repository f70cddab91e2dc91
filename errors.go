// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax

import "fmt"

// ErrorKind identifies the class of grammar violation the recognition
// machine reported. See §6.4 of the design for the full list.
type ErrorKind byte

// The complete set of error kinds the parser can report.
const (
	// NoError is the zero value and is never delivered to a sink.
	NoError ErrorKind = iota
	WrongKeywordCharacter
	MismatchedArray
	MismatchedBrace
	MemberExpected
	ColonExpected
	UnexpectedCharacter
	InvalidNumber
	CommaExpected
)

var errorKindStr = [...]string{
	NoError:               "no error",
	WrongKeywordCharacter: "wrong keyword character",
	MismatchedArray:       "mismatched array",
	MismatchedBrace:       "mismatched brace",
	MemberExpected:        "member expected",
	ColonExpected:         "colon expected",
	UnexpectedCharacter:   "unexpected character",
	InvalidNumber:         "invalid number",
	CommaExpected:         "comma expected",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) {
		return errorKindStr[NoError]
	}
	return errorKindStr[k]
}

// Error is the concrete error type the parser attaches to a terminal
// failure. It reports the offending byte offset and line/column the way
// jtree.SyntaxError does, plus the structured ErrorKind a sink can switch
// on without string matching.
type Error struct {
	Kind   ErrorKind
	Offset int64 // 0-based byte offset of the offending byte
	Line   int   // 1-based line number
	Column int   // 0-based column offset within Line

	err error // wrapped cause, if the error originated from a Sink method
}

// Error satisfies the error interface. If e wraps an error returned from a
// Sink method rather than a grammar violation, the wrapped error's message
// is reported instead of a Kind (which is NoError in that case).
func (e *Error) Error() string {
	if e.Kind == NoError && e.err != nil {
		return fmt.Sprintf("%d:%d (offset %d): %v", e.Line, e.Column, e.Offset, e.err)
	}
	return fmt.Sprintf("%d:%d (offset %d): %s", e.Line, e.Column, e.Offset, e.Kind)
}

// Unwrap supports error wrapping for errors surfaced from Sink methods.
func (e *Error) Unwrap() error { return e.err }
