// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsax implements an incremental, push-driven JSON parser. Input
// arrives as an arbitrary sequence of byte chunks handed to Feed; the
// parser never materializes the parsed document, and instead reports
// structural events to a caller-supplied Sink as they are recognized. Any
// single token — a string, an object name, or a number — may span
// arbitrarily many chunks; the parser copies none of the bytes it has not
// seen, and delivers a fragmented string or name token through paired
// start/cont/end calls so a Sink can stream it without buffering.
//
// # Feeding input
//
// Construct a Parser with a Sink and call Feed once per chunk:
//
//	p := jsax.New(sink)
//	for more := range chunks {
//	    if !p.Feed(more) {
//	        log.Fatalf("parse failed: %v", p.Err())
//	    }
//	}
//	if !p.Close() {
//	    log.Fatal("input ended before a value was complete")
//	}
//
// Feed returns false once the machine has entered its terminal error
// state; after that, every further Feed call returns false immediately
// and no further Sink methods are invoked for that Parser. Close
// finalizes a value whose only remaining terminator is the true end of
// input — a bare top-level number with nothing following it — and
// reports whether the document was left in a complete state.
//
// # Sinks
//
// A Sink receives events in strict document order: ObjectStart/ObjectEnd
// and ArrayStart/ArrayEnd bracket their contents, Name (or the
// fragmented NameStart/NameCont/NameEnd triple) precedes the value of
// each object member, and Bool, Null, Int, Float, and String (or its
// fragmented counterpart) report scalar values. Every text argument is a
// mem.RO view into the chunk currently being processed; a Sink that
// needs to retain a value beyond the call that delivered it must copy
// it.
//
// # Comments
//
// The core recognition machine has no notion of JSON comments; feeding
// it a document containing "//" or "/* */" fails like any other malformed
// input, with the error kind of the state that meets the '/': for example
// UnexpectedCharacter where a value is expected, MemberExpected where an
// object member name is expected, or CommaExpected after a value. Package
// jsax/jwcc offers a whole-buffer entry point for the comment-tolerant
// JWCC dialect instead of complicating the streaming core with a second
// grammar.
package jsax
