// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax

import "go4.org/mem"

// A Sink receives structural events from a Parser in strict document
// order. Every text argument is a zero-copy view into the chunk the
// Parser is currently processing: a Sink that needs to retain a value
// past the return of the method that delivered it must copy it (for
// example with text.StringCopy() or append([]byte(nil), ...)).
//
// The parser never invokes a Sink method after Error has been called for
// the document being parsed.
//
// A Sink method may return a non-nil error to abort parsing early; the
// error is not interpreted, only propagated to the caller of Feed and
// recorded so Parser.Err reports it. This is independent of Error, which
// the parser calls on its own initiative when it detects a grammar
// violation.
type Sink interface {
	// ObjectStart reports the opening brace of an object.
	ObjectStart() error
	// ObjectEnd reports the closing brace of an object.
	ObjectEnd() error
	// ArrayStart reports the opening bracket of an array.
	ArrayStart() error
	// ArrayEnd reports the closing bracket of an array.
	ArrayEnd() error

	// Name reports an object member name that fit entirely within one
	// chunk. text holds the raw (unescaped) bytes between the quotes; the
	// quotes themselves are never included.
	Name(text mem.RO) error
	// NameStart reports the first fragment of a member name that spans
	// more than one chunk.
	NameStart(text mem.RO) error
	// NameCont reports a subsequent fragment of a fragmented member name.
	NameCont(text mem.RO) error
	// NameEnd reports the closing quote of a fragmented member name.
	NameEnd() error

	// Bool reports a true or false literal.
	Bool(v bool) error
	// Null reports a null literal.
	Null() error
	// Int reports an integer literal with no fraction or exponent.
	Int(v int64) error
	// Float reports a number with a fraction and/or an exponent.
	Float(v float64) error

	// String reports a string value that fit entirely within one chunk.
	// text holds the raw (unescaped) bytes between the quotes; the quotes
	// themselves are never included.
	String(text mem.RO) error
	// StringStart reports the first fragment of a string value that spans
	// more than one chunk.
	StringStart(text mem.RO) error
	// StringCont reports a subsequent fragment of a fragmented string value.
	StringCont(text mem.RO) error
	// StringEnd reports the closing quote of a fragmented string value.
	StringEnd() error

	// Error reports a terminal grammar violation. No further Sink methods
	// are called for this document after Error returns.
	Error(kind ErrorKind)
}

// NopSink is a Sink whose methods do nothing and never fail. Embed it to
// implement only the events a particular Sink cares about, or construct
// a Parser with a nil Sink argument to get a NopSink for free (useful for
// pure syntax validation).
type NopSink struct{}

func (NopSink) ObjectStart() error         { return nil }
func (NopSink) ObjectEnd() error           { return nil }
func (NopSink) ArrayStart() error          { return nil }
func (NopSink) ArrayEnd() error            { return nil }
func (NopSink) Name(mem.RO) error          { return nil }
func (NopSink) NameStart(mem.RO) error     { return nil }
func (NopSink) NameCont(mem.RO) error      { return nil }
func (NopSink) NameEnd() error             { return nil }
func (NopSink) Bool(bool) error            { return nil }
func (NopSink) Null() error                { return nil }
func (NopSink) Int(int64) error            { return nil }
func (NopSink) Float(float64) error        { return nil }
func (NopSink) String(mem.RO) error        { return nil }
func (NopSink) StringStart(mem.RO) error   { return nil }
func (NopSink) StringCont(mem.RO) error    { return nil }
func (NopSink) StringEnd() error           { return nil }
func (NopSink) Error(ErrorKind)            {}

var _ Sink = NopSink{}
