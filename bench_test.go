// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsax_test

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/creachadair/jsax"
	"go4.org/mem"
)

const benchInput = `{
  "id": 471,
  "name": "widget assembly",
  "tags": ["hardware", "beta", "internal"],
  "active": true,
  "price": 19.99,
  "components": [
    {"sku": "A-1", "count": 4},
    {"sku": "B-2", "count": 12},
    {"sku": "C-3", "count": 1}
  ],
  "notes": null
}`

func BenchmarkParse(b *testing.B) {
	input := []byte(benchInput)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p := jsax.New(jsax.NopSink{})
			if !p.Feed(input) {
				b.Fatalf("Feed failed: %v", p.Err())
			}
			if !p.Close() {
				b.Fatalf("Close: input incomplete: %v", p.Err())
			}
		}
	})
}

// countingSink exercises the Sink dispatch overhead in isolation, so the
// benchmark above is not entirely dominated by the state machine itself.
type countingSink struct {
	jsax.NopSink
	n int
}

func (c *countingSink) Int(v int64) error    { c.n++; return nil }
func (c *countingSink) Float(v float64) error { c.n++; return nil }
func (c *countingSink) String(text mem.RO) error {
	c.n++
	return nil
}

func BenchmarkParseWithSink(b *testing.B) {
	input := []byte(benchInput)
	for i := 0; i < b.N; i++ {
		sink := new(countingSink)
		p := jsax.New(sink)
		if !p.Feed(input) {
			b.Fatalf("Feed failed: %v", p.Err())
		}
		p.Close()
	}
}
