// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jwcc adapts the jsax streaming core to JSON With Commas and
// Comments, as described by
// https://nigeltao.github.io/blog/2021/json-with-commas-comments.html.
//
// The core recognition machine has no notion of comments and rejects a
// trailing comma before an array's closing bracket (see the "Comments"
// section of the jsax package documentation): teaching it two grammars at
// once would complicate every
// state for the sake of a dialect most callers never see. Instead this
// package standardizes a whole buffer with hujson before handing it to
// jsax.Parser, so the streaming core only ever sees strict JSON. This
// trades away incremental Feed for buffers that use the JWCC dialect;
// callers that need both should strip comments themselves ahead of the
// streaming Parser.
package jwcc

import (
	"fmt"

	"github.com/creachadair/jsax"
	"github.com/tailscale/hujson"
)

// Parse standardizes doc, a JWCC document, and feeds the result to a
// Parser constructed around sink. A non-nil error means either doc could
// not be standardized (a JWCC syntax error, wrapped) or the standardized
// JSON was itself malformed or incomplete (a *jsax.Error, from the
// returned Parser's Err method).
func Parse(sink jsax.Sink, doc []byte, opts ...jsax.Option) (*jsax.Parser, error) {
	std, err := Standardize(doc)
	if err != nil {
		return nil, err
	}
	p := jsax.New(sink, opts...)
	if !p.Feed(std) {
		return p, p.Err()
	}
	if !p.Close() {
		return p, p.Err()
	}
	return p, nil
}

// Standardize strips comments and trailing commas from doc, returning the
// equivalent strict JSON. It is exported so a caller with its own
// chunking strategy can standardize once up front and then drive
// jsax.Parser directly.
func Standardize(doc []byte) ([]byte, error) {
	val, err := hujson.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parse JWCC input: %w", err)
	}
	val.Standardize()
	return val.Pack(), nil
}
