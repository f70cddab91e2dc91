// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax

import "go4.org/mem"

// This file implements the fragment emitter: the piece of the machine that
// tracks the run of bytes belonging to the string or object name currently
// being collected, and decides whether the sink sees it as a single whole
// token or as a start/cont*/end sequence. See §4.3 of the design.
//
// The pending view is always [p.fragStart, i) or [p.fragStart, len(chunk))
// into p.chunk, the chunk currently being processed by Feed. It is never
// retained past the Feed call that produced it: on chunk exhaustion,
// tickStringLike either flushes it as a start or continuation fragment or,
// if it is empty,
// leaves it for the next chunk (which restarts fragStart at 0).

// beginStringLike starts collecting a string (isName == false) or object
// name (isName == true) whose opening quote was just consumed. contentStart
// is the index in the current chunk of the first content byte, i.e. one
// past the opening quote.
func (p *Parser) beginStringLike(isName bool, contentStart int) {
	p.collectingName = isName
	p.fragOpen = false
	p.fragStart = contentStart
	p.state = stStringBody
}

// stepStringLike consumes one byte while inside a string/name body. Every
// byte but the closing quote is ordinary content, including a backslash:
// this core performs no escape processing (§4.2).
func (p *Parser) stepStringLike(i int, c class) bool {
	if c != cQuote {
		return true
	}
	return p.closeStringLike(i)
}

// closeStringLike flushes the pending view up to (not including) the
// closing quote at offset end, and emits whichever combination of
// whole/start/cont/end calls the protocol in §4.3 requires.
func (p *Parser) closeStringLike(end int) bool {
	view := mem.B(p.chunk[p.fragStart:end])
	var err error
	switch {
	case !p.fragOpen:
		// The whole token fits between the quotes seen so far: rule 1.
		if p.collectingName {
			err = p.sink.Name(view)
		} else {
			err = p.sink.String(view)
		}
	case view.Len() > 0:
		// Trailing bytes remain before the quote: flush them, then close.
		if p.collectingName {
			if err = p.sink.NameCont(view); err == nil {
				err = p.sink.NameEnd()
			}
		} else {
			if err = p.sink.StringCont(view); err == nil {
				err = p.sink.StringEnd()
			}
		}
	default:
		// The quote arrived immediately after a prior flush: no zero-length
		// continuation, just the terminating end call.
		if p.collectingName {
			err = p.sink.NameEnd()
		} else {
			err = p.sink.StringEnd()
		}
	}
	if err != nil {
		return p.abort(err)
	}
	p.fragOpen = false
	if p.collectingName {
		p.state = stExpectColon
	} else {
		p.enterArrayObject()
	}
	return true
}

// tickStringLike runs on the end-of-input tick while a string/name body is
// in progress. It flushes whatever is pending as a start (first time) or
// cont (subsequent times) fragment, and suppresses the call entirely if the
// pending view is empty, per the "no zero-length middle fragment" rule.
func (p *Parser) tickStringLike() bool {
	view := mem.B(p.chunk[p.fragStart:len(p.chunk)])
	if view.Len() == 0 {
		return true
	}
	var err error
	if !p.fragOpen {
		if p.collectingName {
			err = p.sink.NameStart(view)
		} else {
			err = p.sink.StringStart(view)
		}
		p.fragOpen = true
	} else {
		if p.collectingName {
			err = p.sink.NameCont(view)
		} else {
			err = p.sink.StringCont(view)
		}
	}
	if err != nil {
		return p.abort(err)
	}
	return true
}
