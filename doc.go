// Package natto is a Go interface to the MeCab part-of-speech and
// morphological analyzer, in the spirit of the natto family of bindings.
//
// A MeCab tagger wraps a native engine: either libmecab loaded at runtime
// from the path in MECAB_PATH (build tag "mecab"), or the embedded
// pure-Go kagome engine. Parsing goes through a per-call lattice session
// that supports boundary and feature constraints expressed as byte offsets
// into the encoded sentence.
//
//	nm, err := natto.NewEmbedded("")
//	if err != nil { ... }
//	defer nm.Close()
//
//	out, err := nm.Parse("にわにはにわにわとりがいる。",
//		natto.WithBoundaryConstraints("にわ|はにわにわとり", true))
//
// A *MeCab and the iterators it hands out are single-owner: they are not
// safe for concurrent use without external locking, because the underlying
// engine handles are not.
package natto

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'natto'
func tracer() tracing.Trace {
	return tracing.Select("natto")
}
