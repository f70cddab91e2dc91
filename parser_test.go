// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax_test

import (
	"fmt"
	"testing"

	"github.com/creachadair/jsax"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

// recordSink implements jsax.Sink and renders each event into the same
// notation the design scenarios use, so a test can compare against a
// literal event log instead of hand-rolling a bespoke observer per test.
type recordSink struct {
	log []string
}

func (r *recordSink) push(format string, args ...any) error {
	r.log = append(r.log, fmt.Sprintf(format, args...))
	return nil
}

func (r *recordSink) ObjectStart() error { return r.push("object_start") }
func (r *recordSink) ObjectEnd() error   { return r.push("object_end") }
func (r *recordSink) ArrayStart() error  { return r.push("array_start") }
func (r *recordSink) ArrayEnd() error    { return r.push("array_end") }

func (r *recordSink) Name(text mem.RO) error      { return r.push("named_object(%q)", text.StringCopy()) }
func (r *recordSink) NameStart(text mem.RO) error {
	return r.push("named_object_start(%q)", text.StringCopy())
}
func (r *recordSink) NameCont(text mem.RO) error {
	return r.push("named_object_cont(%q)", text.StringCopy())
}
func (r *recordSink) NameEnd() error { return r.push("named_object_end()") }

func (r *recordSink) Bool(v bool) error    { return r.push("value(%v)", v) }
func (r *recordSink) Null() error          { return r.push("value(null)") }
func (r *recordSink) Int(v int64) error    { return r.push("value(%d)", v) }
func (r *recordSink) Float(v float64) error { return r.push("value(%v)", v) }

func (r *recordSink) String(text mem.RO) error { return r.push("value(%q)", text.StringCopy()) }
func (r *recordSink) StringStart(text mem.RO) error {
	return r.push("string_value_start(%q)", text.StringCopy())
}
func (r *recordSink) StringCont(text mem.RO) error {
	return r.push("string_value_cont(%q)", text.StringCopy())
}
func (r *recordSink) StringEnd() error { return r.push("string_value_end()") }

func (r *recordSink) Error(kind jsax.ErrorKind) { r.log = append(r.log, fmt.Sprintf("error(%s)", kind)) }

var _ jsax.Sink = (*recordSink)(nil)

func feedChunks(p *jsax.Parser, chunks ...string) bool {
	for _, c := range chunks {
		if !p.Feed([]byte(c)) {
			return false
		}
	}
	return true
}

func TestParserScenarios(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		want    []string
		closeOK bool
	}{
		{
			name:   "object of two members in one chunk",
			chunks: []string{`{"a":1,"b":true}`},
			want: []string{
				`object_start`, `named_object("a")`, `value(1)`,
				`named_object("b")`, `value(true)`, `object_end`,
			},
			closeOK: true,
		},
		{
			name:   "name fragmented across chunks",
			chunks: []string{`{"a`, `bc":12`, `}`},
			want: []string{
				`object_start`, `named_object_start("a")`, `named_object_cont("bc")`,
				`named_object_end()`, `value(12)`, `object_end`,
			},
			closeOK: true,
		},
		{
			name:    "negative float with exponent",
			chunks:  []string{`[-3.5e2]`},
			want:    []string{`array_start`, `value(-350)`, `array_end`},
			closeOK: true,
		},
		{
			name:    "missing comma between array elements",
			chunks:  []string{`[1 2]`},
			want:    []string{`array_start`, `value(1)`, `error(comma expected)`},
			closeOK: false,
		},
		{
			name:    "bracket after brace",
			chunks:  []string{`{]`},
			want:    []string{`object_start`, `error(member expected)`},
			closeOK: false,
		},
		{
			name:    "keyword spanning two chunks",
			chunks:  []string{`tru`, `e`},
			want:    []string{`value(true)`},
			closeOK: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sink := new(recordSink)
			p := jsax.New(sink)
			feedChunks(p, test.chunks...)
			if diff := cmp.Diff(test.want, sink.log); diff != "" {
				t.Errorf("event log mismatch (-want +got):\n%s", diff)
			}
			if got := p.Close(); got != test.closeOK {
				t.Errorf("Close: got %v, want %v", got, test.closeOK)
			}
		})
	}
}

func TestParserStringFragmentedAcrossThreeChunks(t *testing.T) {
	sink := new(recordSink)
	p := jsax.New(sink)
	if !feedChunks(p, `"ab`, `cd`, `ef"`) {
		t.Fatalf("Feed failed: %v", p.Err())
	}
	if !p.Close() {
		t.Fatalf("Close: input incomplete: %v", p.Err())
	}
	want := []string{
		`string_value_start("ab")`, `string_value_cont("cd")`, `string_value_cont("ef")`,
		`string_value_end()`,
	}
	if diff := cmp.Diff(want, sink.log); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
}

func TestParserEmptyObjectAndTrailingCommaObject(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`{}`, []string{`object_start`, `object_end`}},
		{`{"a":1,}`, []string{`object_start`, `named_object("a")`, `value(1)`, `object_end`}},
	}
	for _, test := range tests {
		sink := new(recordSink)
		p := jsax.New(sink)
		if !p.Feed([]byte(test.input)) {
			t.Errorf("Feed(%q) failed: %v", test.input, p.Err())
			continue
		}
		if diff := cmp.Diff(test.want, sink.log); diff != "" {
			t.Errorf("Feed(%q): event log mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

// JSON state has no accepted transition for ']': neither a genuinely empty
// array nor a trailing comma before the closing bracket is tolerated,
// unlike MEMBER's dedicated (and object-only) empty/trailing-comma
// handling of '}'. This asymmetry matches the reference machine exactly:
// its "json"_state has no idx_close transition at all.
func TestParserArrayRejectsBrackCloseInValuePosition(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`[]`, []string{`array_start`, `error(unexpected character)`}},
		{`[1,2,]`, []string{`array_start`, `value(1)`, `value(2)`, `error(unexpected character)`}},
	}
	for _, test := range tests {
		sink := new(recordSink)
		p := jsax.New(sink)
		if p.Feed([]byte(test.input)) {
			t.Errorf("Feed(%q) unexpectedly succeeded", test.input)
			continue
		}
		if diff := cmp.Diff(test.want, sink.log); diff != "" {
			t.Errorf("Feed(%q): event log mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParserBareTopLevelNumberNeedsClose(t *testing.T) {
	sink := new(recordSink)
	p := jsax.New(sink)
	if !p.Feed([]byte(`42`)) {
		t.Fatalf("Feed failed: %v", p.Err())
	}
	if len(sink.log) != 0 {
		t.Fatalf("Feed emitted before Close: %v", sink.log)
	}
	if !p.Close() {
		t.Fatalf("Close: got incomplete, want complete: %v", p.Err())
	}
	if diff := cmp.Diff([]string{`value(42)`}, sink.log); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
}

func TestParserTerminalityAfterError(t *testing.T) {
	sink := new(recordSink)
	p := jsax.New(sink)
	p.Feed([]byte(`[1 2]`))
	before := len(sink.log)
	p.Feed([]byte(` more garbage`))
	if len(sink.log) != before {
		t.Errorf("Sink received events after error: %v", sink.log[before:])
	}
}

func TestParserMismatchedCloser(t *testing.T) {
	sink := new(recordSink)
	p := jsax.New(sink)
	if p.Feed([]byte(`[1}`)) {
		t.Fatal("Feed unexpectedly succeeded on mismatched closer")
	}
	want := []string{`array_start`, `value(1)`, `error(mismatched brace)`}
	if diff := cmp.Diff(want, sink.log); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
}

func TestParserMaxDepth(t *testing.T) {
	sink := new(recordSink)
	p := jsax.New(sink, jsax.WithMaxDepth(1))
	if p.Feed([]byte(`[[1]]`)) {
		t.Fatal("Feed unexpectedly succeeded past the configured depth limit")
	}
}

// FuzzChunkInvariance checks the chunk-invariance property: splitting a
// well-formed document at an arbitrary byte offset must not change the
// sequence of sink events, up to the string/name fragmentation the
// property itself allows for.
func FuzzChunkInvariance(f *testing.F) {
	f.Add(`{"a":1,"b":[true,false,null,2.5e1]}`, 5)
	f.Add(`[1,2,3]`, 0)
	f.Add(`{"name":"value"}`, 3)
	f.Fuzz(func(t *testing.T, doc string, cut int) {
		whole := new(recordSink)
		wp := jsax.New(whole)
		if !wp.Feed([]byte(doc)) || !wp.Close() {
			t.Skip("not a well-formed document")
		}

		if cut < 0 {
			cut = -cut
		}
		if len(doc) > 0 {
			cut = cut % len(doc)
		} else {
			cut = 0
		}

		split := new(recordSink)
		sp := jsax.New(split)
		if !sp.Feed([]byte(doc[:cut])) || !sp.Feed([]byte(doc[cut:])) || !sp.Close() {
			t.Fatalf("split feed failed for cut=%d on %q: %v", cut, doc, sp.Err())
		}

		joinedWhole := joinFragments(whole.log)
		joinedSplit := joinFragments(split.log)
		if diff := cmp.Diff(joinedWhole, joinedSplit); diff != "" {
			t.Errorf("cut=%d on %q: event log mismatch after normalizing fragments (-whole +split):\n%s", cut, doc, diff)
		}
	})
}

// joinFragments collapses a start/cont*/end run for a string or name into
// its single whole-token form, so two event logs that differ only in how a
// token happened to be chunked can be compared for equality.
func joinFragments(log []string) []string {
	var out []string
	var pendingKind, pending string
	flush := func() {
		if pendingKind != "" {
			out = append(out, fmt.Sprintf("%s(%s)", pendingKind, pending))
			pendingKind = ""
		}
	}
	for _, ev := range log {
		switch {
		case hasPrefixSuffix(ev, "string_value_start(", ")"):
			pendingKind, pending = "value", innerQuoted(ev, "string_value_start(")
		case hasPrefixSuffix(ev, "string_value_cont(", ")"):
			pending = pending[:len(pending)-1] + innerQuoted(ev, "string_value_cont(")[1:]
		case ev == "string_value_end()":
			flush()
		case hasPrefixSuffix(ev, "named_object_start(", ")"):
			pendingKind, pending = "named_object", innerQuoted(ev, "named_object_start(")
		case hasPrefixSuffix(ev, "named_object_cont(", ")"):
			pending = pending[:len(pending)-1] + innerQuoted(ev, "named_object_cont(")[1:]
		case ev == "named_object_end()":
			flush()
		default:
			flush()
			out = append(out, ev)
		}
	}
	flush()
	return out
}

func hasPrefixSuffix(s, prefix, suffix string) bool {
	return len(s) >= len(prefix)+len(suffix) && s[:len(prefix)] == prefix && s[len(s)-len(suffix):] == suffix
}

func innerQuoted(s, prefix string) string {
	return s[len(prefix) : len(s)-1]
}
