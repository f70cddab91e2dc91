// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax

// state is a node of the recognition state machine. See §4.2 of the
// design for the full transition table this type implements.
type state byte

const (
	stJSON        state = iota // expects any value
	stIntWS                    // after a lone '-', expects the first digit
	stInt                      // accumulating an integer's digits
	stFrac                     // accumulating a fraction's digits
	stExpSign                  // expects a sign or the first exponent digit
	stExp                      // accumulating an exponent's digits
	stStringBody               // inside a string or name body
	stMember                   // expects an object's first name, or '}'
	stExpectColon              // expects ':' after a member name
	stKeyword                  // matching the body of true/false/null
	stArrayObject              // post-value junction
	stDone                     // terminal: input fully consumed
	stError                    // terminal: a grammar violation occurred
)

const (
	frameObject byte = 'O'
	frameArray  byte = 'A'
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithMaxDepth bounds the nesting depth the parser will accept. The
// nesting stack is the only heap-owned resource the core allocates (§5);
// WithMaxDepth guards it against unbounded growth from adversarial or
// malformed input. A depth of 0, the default, means unbounded. Exceeding
// the configured depth is reported as UnexpectedCharacter: the input
// grammar has no dedicated "too deep" error kind (§6.4), and refusing the
// offending brace or bracket is the closest fit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) { p.maxDepth = depth }
}

// Parser recognizes a single JSON value from a sequence of byte chunks and
// reports its structure to a Sink. A Parser is not safe for concurrent
// use; each Feed call must complete before the next begins (§5).
type Parser struct {
	sink     Sink
	maxDepth int

	state state
	stack []byte // nesting markers, bottom-first; frameObject or frameArray

	num numAcc

	kw    string // target keyword body while state == stKeyword
	kwPos int    // index of the next expected byte in kw

	collectingName bool // string body targets Name* rather than String* calls
	fragOpen       bool // a start call has already been emitted for this token
	fragStart      int  // index into chunk where the pending run begins

	chunk []byte // the chunk currently being processed by Feed

	byteCount int64
	line      int
	col       int

	curOffset int64
	curLine   int
	curCol    int

	err error
}

// New constructs a Parser that delivers events to sink. A nil sink is
// replaced with a NopSink, which is useful for pure syntax validation.
func New(sink Sink, opts ...Option) *Parser {
	if sink == nil {
		sink = NopSink{}
	}
	p := &Parser{sink: sink, line: 1}
	p.num.reset()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sink returns the Sink this parser delivers events to.
func (p *Parser) Sink() Sink { return p.sink }

// Err returns the error that terminated the parser, or nil if the parser
// has not yet failed. A grammar violation is reported here as *Error; an
// error returned from a Sink method is wrapped and reported here too.
func (p *Parser) Err() error { return p.err }

// Offset reports the number of bytes consumed so far, for use as a
// diagnostic cursor independent of any particular Error value (§3).
func (p *Parser) Offset() int64 { return p.byteCount }

// Feed delivers the next chunk of input to the parser. It returns false if
// the machine is in its terminal error state after processing chunk, true
// otherwise. Once Feed has returned false, the result of any further Feed
// call is unspecified; implementations may return false immediately (§6.2).
func (p *Parser) Feed(chunk []byte) bool {
	if p.state == stError {
		return false
	}
	p.chunk = chunk
	if p.state == stStringBody {
		p.fragStart = 0
	}
	for i := 0; i < len(chunk); i++ {
		b := chunk[i]
		p.curOffset, p.curLine, p.curCol = p.byteCount, p.line, p.col
		p.byteCount++
		if b == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
		if !p.step(b, i, classify(b)) {
			return false
		}
	}
	if p.state == stStringBody {
		if !p.tickStringLike() {
			return false
		}
	}
	return p.state != stError
}

// Close signals that no more input will arrive. Most states have already
// completed by the time all input is fed, because a real terminator byte
// (whitespace, a comma, or a closing bracket) drove them there; the one
// state that has no such terminator is a bare top-level number, whose
// only remaining boundary is the true end of input. Close finalizes that
// case and reports whether the document was left complete. It is not part
// of the core recognition machine in §4.2 — Feed alone cannot distinguish
// "this chunk ended" from "the document ended" — but every push-based
// streaming parser needs an equivalent signal, so jsax provides one.
func (p *Parser) Close() bool {
	switch p.state {
	case stDone:
		return true
	case stError:
		return false
	case stInt:
		if err := p.sink.Int(p.num.intValue()); err != nil {
			return p.abort(err)
		}
		p.enterArrayObject()
	case stFrac, stExp:
		if err := p.sink.Float(p.num.floatValue()); err != nil {
			return p.abort(err)
		}
		p.enterArrayObject()
	}
	return p.state == stDone
}

// step dispatches one classified byte to the current state's handler. A
// handler may report that the byte must be reprocessed against a new
// state (the "again" result): this is how a numeric terminator byte,
// which is not itself part of the number, gets fed to the post-value
// junction without being consumed twice or skipped (§4.2, "numeric
// terminators are eagerly evaluated").
func (p *Parser) step(b byte, i int, c class) bool {
	for {
		var again, ok bool
		switch p.state {
		case stJSON:
			again, ok = p.stepJSON(b, i, c)
		case stIntWS:
			ok = p.stepIntWS(b, c)
		case stInt:
			again, ok = p.stepInt(b, c)
		case stFrac:
			again, ok = p.stepFrac(b, c)
		case stExpSign:
			ok = p.stepExpSign(b, c)
		case stExp:
			again, ok = p.stepExp(b, c)
		case stStringBody:
			ok = p.stepStringLike(i, c)
		case stMember:
			ok = p.stepMember(i, c)
		case stExpectColon:
			ok = p.stepExpectColon(c)
		case stKeyword:
			ok = p.stepKeyword(b)
		case stArrayObject:
			ok = p.stepArrayObject(c)
		case stDone:
			ok = p.stepDone(c)
		default: // stError
			return false
		}
		if !ok {
			return false
		}
		if !again {
			return true
		}
	}
}

func (p *Parser) stepJSON(b byte, i int, c class) (again, ok bool) {
	switch c {
	case cSpace:
		return false, true
	case cBraceOpen:
		if !p.pushContainer(frameObject) {
			return false, false
		}
		if err := p.sink.ObjectStart(); err != nil {
			return false, p.abort(err)
		}
		p.state = stMember
		return false, true
	case cBrackOpen:
		if !p.pushContainer(frameArray) {
			return false, false
		}
		if err := p.sink.ArrayStart(); err != nil {
			return false, p.abort(err)
		}
		p.state = stJSON
		return false, true
	case cQuote:
		p.beginStringLike(false, i+1)
		return false, true
	case cDigit:
		p.num.reset()
		p.num.addIntDigit(b)
		p.state = stInt
		return false, true
	case cMinus:
		p.num.reset()
		p.num.sign = -1
		p.state = stIntWS
		return false, true
	case cKeyN:
		p.beginKeyword("null")
		return false, true
	case cKeyT:
		p.beginKeyword("true")
		return false, true
	case cKeyF:
		p.beginKeyword("false")
		return false, true
	default:
		return false, p.fail(UnexpectedCharacter)
	}
}

func (p *Parser) stepIntWS(b byte, c class) bool {
	if c != cDigit {
		return p.fail(InvalidNumber)
	}
	p.num.addIntDigit(b)
	p.state = stInt
	return true
}

func (p *Parser) stepInt(b byte, c class) (again, ok bool) {
	switch c {
	case cDigit:
		p.num.addIntDigit(b)
		return false, true
	case cDot:
		p.state = stFrac
		return false, true
	case cExponent:
		p.state = stExpSign
		return false, true
	case cComma, cBraceClose, cBrackClose, cSpace:
		if err := p.sink.Int(p.num.intValue()); err != nil {
			return false, p.abort(err)
		}
		p.enterArrayObject()
		return true, true
	default:
		return false, p.fail(InvalidNumber)
	}
}

func (p *Parser) stepFrac(b byte, c class) (again, ok bool) {
	switch c {
	case cDigit:
		p.num.addFracDigit(b)
		return false, true
	case cExponent:
		p.state = stExpSign
		return false, true
	case cComma, cBraceClose, cBrackClose, cSpace:
		if err := p.sink.Float(p.num.floatValue()); err != nil {
			return false, p.abort(err)
		}
		p.enterArrayObject()
		return true, true
	default:
		return false, p.fail(InvalidNumber)
	}
}

func (p *Parser) stepExpSign(b byte, c class) bool {
	switch c {
	case cPlus:
		p.num.expSign = 1
	case cMinus:
		p.num.expSign = -1
	case cDigit:
		p.num.addExpDigit(b)
	default:
		return p.fail(InvalidNumber)
	}
	p.state = stExp
	return true
}

func (p *Parser) stepExp(b byte, c class) (again, ok bool) {
	switch c {
	case cDigit:
		p.num.addExpDigit(b)
		return false, true
	case cComma, cBraceClose, cBrackClose, cSpace:
		if err := p.sink.Float(p.num.floatValue()); err != nil {
			return false, p.abort(err)
		}
		p.enterArrayObject()
		return true, true
	default:
		return false, p.fail(InvalidNumber)
	}
}

func (p *Parser) stepMember(i int, c class) bool {
	switch c {
	case cSpace:
		return true
	case cQuote:
		p.beginStringLike(true, i+1)
		return true
	case cBraceClose:
		p.popContainer()
		if err := p.sink.ObjectEnd(); err != nil {
			return p.abort(err)
		}
		p.enterArrayObject()
		return true
	default:
		return p.fail(MemberExpected)
	}
}

func (p *Parser) stepExpectColon(c class) bool {
	switch c {
	case cSpace:
		return true
	case cColon:
		p.state = stJSON
		return true
	default:
		return p.fail(ColonExpected)
	}
}

func (p *Parser) beginKeyword(word string) {
	p.kw = word
	p.kwPos = 1 // the first byte was already matched by the class dispatch
	p.state = stKeyword
}

func (p *Parser) stepKeyword(b byte) bool {
	if b != p.kw[p.kwPos] {
		return p.fail(WrongKeywordCharacter)
	}
	p.kwPos++
	if p.kwPos < len(p.kw) {
		return true
	}
	var err error
	switch p.kw {
	case "true":
		err = p.sink.Bool(true)
	case "false":
		err = p.sink.Bool(false)
	case "null":
		err = p.sink.Null()
	}
	if err != nil {
		return p.abort(err)
	}
	p.enterArrayObject()
	return true
}

func (p *Parser) stepArrayObject(c class) bool {
	switch c {
	case cSpace:
		return true
	case cComma:
		if p.stack[len(p.stack)-1] == frameObject {
			p.state = stMember
		} else {
			p.state = stJSON
		}
		return true
	case cBraceClose:
		if p.stack[len(p.stack)-1] != frameObject {
			return p.fail(MismatchedBrace)
		}
		p.popContainer()
		if err := p.sink.ObjectEnd(); err != nil {
			return p.abort(err)
		}
		p.enterArrayObject()
		return true
	case cBrackClose:
		if p.stack[len(p.stack)-1] != frameArray {
			return p.fail(MismatchedArray)
		}
		p.popContainer()
		if err := p.sink.ArrayEnd(); err != nil {
			return p.abort(err)
		}
		p.enterArrayObject()
		return true
	default:
		return p.fail(CommaExpected)
	}
}

func (p *Parser) stepDone(c class) bool {
	if c == cSpace {
		return true
	}
	return p.fail(UnexpectedCharacter)
}

// enterArrayObject applies the post-value junction's entry action: an
// empty stack means the sole top-level value is complete.
func (p *Parser) enterArrayObject() {
	if len(p.stack) == 0 {
		p.state = stDone
	} else {
		p.state = stArrayObject
	}
}

func (p *Parser) pushContainer(kind byte) bool {
	if p.maxDepth > 0 && len(p.stack) >= p.maxDepth {
		p.fail(UnexpectedCharacter)
		return false
	}
	p.stack = append(p.stack, kind)
	return true
}

func (p *Parser) popContainer() { p.stack = p.stack[:len(p.stack)-1] }

// fail terminates the parser with a grammar violation, reports it to the
// sink, and returns false for convenient use in a return statement.
func (p *Parser) fail(kind ErrorKind) bool {
	p.err = &Error{Kind: kind, Offset: p.curOffset, Line: p.curLine, Column: p.curCol}
	p.state = stError
	p.sink.Error(kind)
	return false
}

// abort terminates the parser because a Sink method returned err. Unlike
// fail, this does not call sink.Error: the sink already knows why it
// stopped accepting events.
func (p *Parser) abort(err error) bool {
	p.err = &Error{Offset: p.curOffset, Line: p.curLine, Column: p.curCol, err: err}
	p.state = stError
	return false
}

