package natto

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buruzaemon/natto-go/binding"
	"github.com/buruzaemon/natto-go/codec"
	"github.com/buruzaemon/natto-go/splitter"
)

// Boundary constraint markers, re-exported for callers of the session API.
const (
	AnyBoundary   = binding.AnyBoundary
	TokenBoundary = binding.TokenBoundary
	InsideToken   = binding.InsideToken
)

type latticeState int

const (
	stateCreated latticeState = iota
	stateSentenceSet
	stateConstrained
	stateParsed
	stateClosed
)

// Lattice is one constrained parsing session over a native lattice handle.
// The session moves through SetSentence, optional constraint calls, Parse,
// and then ToString or Nodes; Close releases the native handle and is
// idempotent. A Lattice is single-owner.
type Lattice struct {
	tagger binding.Tagger
	lat    binding.Lattice
	cdc    *codec.Codec

	text        string
	sentenceLen int // encoded byte length
	nbest       int
	state       latticeState
}

func newLattice(model binding.Model, tagger binding.Tagger, cdc *codec.Codec) (*Lattice, error) {
	bl := model.NewLattice()
	if bl == nil {
		return nil, &ConstructionError{Reason: "could not create lattice"}
	}
	return &Lattice{tagger: tagger, lat: bl, cdc: cdc, nbest: 1}, nil
}

// SetSentence encodes text and stores it in the native lattice. It must be
// called before any constraint call. Empty text is rejected.
func (l *Lattice) SetSentence(text string) error {
	if l.state == stateClosed {
		return &ConstraintError{Reason: "lattice is closed"}
	}
	if text == "" {
		return &ConstraintError{Reason: "sentence must not be empty"}
	}
	b, err := l.cdc.Encode(text)
	if err != nil {
		return err
	}
	l.lat.SetSentence(b)
	l.text = text
	l.sentenceLen = len(b)
	l.state = stateSentenceSet
	return nil
}

// SetRequestType replaces the lattice request type.
func (l *Lattice) SetRequestType(rt binding.RequestType) {
	l.lat.SetRequestType(rt)
}

// AddRequestType ORs flags into the lattice request type.
func (l *Lattice) AddRequestType(rt binding.RequestType) {
	l.lat.AddRequestType(rt)
}

// SetNBest requests the top n results. n > 1 forces the n-best request
// flag regardless of other flags.
func (l *Lattice) SetNBest(n int) error {
	if n < 1 || n > nbestMax {
		return &ConstraintError{Reason: fmt.Sprintf("invalid N value %d", n)}
	}
	l.nbest = n
	if n > 1 {
		l.lat.AddRequestType(binding.NBest)
	}
	return nil
}

// SetTheta sets the temperature parameter on the lattice.
func (l *Lattice) SetTheta(theta float64) {
	l.lat.SetTheta(theta)
}

// SetBoundaryConstraints tokenizes the sentence against pattern and marks
// every byte offset of the encoded sentence: offsets interior to a matched
// chunk become inside-token, offsets interior to an unmatched chunk get the
// default marker (any-boundary when anyBoundary is true, inside-token
// otherwise), and every chunk edge becomes a token boundary. Offset 0 and
// the final offset are always token boundaries.
func (l *Lattice) SetBoundaryConstraints(pattern string, anyBoundary bool) error {
	if err := l.requireSentence(); err != nil {
		return err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &ConstraintError{Reason: fmt.Sprintf("invalid boundary pattern %q", pattern), Err: err}
	}
	defaultMark := binding.InsideToken
	if anyBoundary {
		defaultMark = binding.AnyBoundary
	}

	pos := 0
	l.lat.SetBoundaryConstraint(0, binding.TokenBoundary)
	for _, chunk := range splitter.SplitPattern(l.text, re) {
		blen, err := l.cdc.ByteLen(chunk.Text)
		if err != nil {
			return err
		}
		mark := defaultMark
		if chunk.Matched {
			mark = binding.InsideToken
		}
		for i := pos + 1; i < pos+blen; i++ {
			l.lat.SetBoundaryConstraint(i, mark)
		}
		pos += blen
		l.lat.SetBoundaryConstraint(pos, binding.TokenBoundary)
	}
	if pos != l.sentenceLen {
		return &ConstraintError{Reason: fmt.Sprintf(
			"boundary constraints cover %d bytes of a %d-byte sentence", pos, l.sentenceLen)}
	}
	l.state = stateConstrained
	return nil
}

// SetFeatureConstraints applies an ordered list of (morpheme, feature)
// pairs: each occurrence of a morpheme becomes one forced token carrying
// its feature string. Earlier pairs win; spans they match are never
// re-split by later pairs.
func (l *Lattice) SetFeatureConstraints(pairs []splitter.FeaturePair) error {
	if err := l.requireSentence(); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return &ConstraintError{Reason: "no feature constraints given"}
	}
	chunks, err := splitter.SplitFeatures(l.text, pairs)
	if err != nil {
		return &ConstraintError{Reason: "invalid feature constraints", Err: err}
	}

	pos := 0
	l.lat.SetBoundaryConstraint(0, binding.TokenBoundary)
	for _, chunk := range chunks {
		blen, err := l.cdc.ByteLen(chunk.Text)
		if err != nil {
			return err
		}
		if chunk.Matched {
			feat, err := l.cdc.Encode(chunk.Feature)
			if err != nil {
				return err
			}
			l.lat.SetFeatureConstraint(pos, pos+blen, feat)
		}
		pos += blen
	}
	l.lat.SetBoundaryConstraint(l.sentenceLen, binding.TokenBoundary)
	if pos != l.sentenceLen {
		return &ConstraintError{Reason: fmt.Sprintf(
			"feature constraints cover %d bytes of a %d-byte sentence", pos, l.sentenceLen)}
	}
	l.state = stateConstrained
	return nil
}

func (l *Lattice) requireSentence() error {
	switch l.state {
	case stateClosed:
		return &ConstraintError{Reason: "lattice is closed"}
	case stateCreated:
		return &ConstraintError{Reason: "constraints require a sentence; call SetSentence first"}
	case stateParsed:
		return &ConstraintError{Reason: "lattice already parsed; Clear before re-constraining"}
	}
	return nil
}

// Parse runs the engine over the lattice. Failure is surfaced as a
// ParseError carrying the engine's error string; it is never retried.
func (l *Lattice) Parse() error {
	if l.state == stateClosed {
		return &ConstraintError{Reason: "lattice is closed"}
	}
	if l.state == stateCreated {
		return &ConstraintError{Reason: "no sentence set"}
	}
	if !l.tagger.ParseLattice(l.lat) {
		return &ParseError{Native: l.errorString()}
	}
	l.state = stateParsed
	return nil
}

// ToString formats the parse result: the single best result, or the top-N
// results when SetNBest requested more than one.
func (l *Lattice) ToString() (string, error) {
	if l.state != stateParsed {
		return "", &ConstraintError{Reason: "nothing parsed yet"}
	}
	var raw []byte
	if l.nbest > 1 {
		raw = l.lat.NBestToString(l.nbest)
	} else {
		raw = l.lat.ToString()
	}
	if raw == nil {
		return "", &ParseError{Native: l.errorString()}
	}
	s, err := l.cdc.Decode(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Nodes returns a lazy iterator over the parse result's node list(s):
// one chain for the best result, and up to N chains in n-best mode.
// Beginning-of-sentence markers are filtered out; end-of-sentence markers
// are yielded and must be checked by the caller. The iterator is
// single-pass and is invalidated by Clear, re-parse or Close.
func (l *Lattice) Nodes() (*NodeIterator, error) {
	if l.state != stateParsed {
		return nil, &ConstraintError{Reason: "nothing parsed yet"}
	}
	bos := l.lat.BOSNode()
	if bos == nil {
		return nil, &ParseError{Native: l.errorString()}
	}
	return &NodeIterator{lat: l, cur: bos, remaining: l.nbest}, nil
}

func (l *Lattice) errorString() string {
	if msg := l.lat.Strerror(); msg != "" {
		return msg
	}
	return l.tagger.Strerror()
}

// Clear resets the lattice for reuse with a new sentence. Any outstanding
// NodeIterator is invalidated.
func (l *Lattice) Clear() {
	if l.state == stateClosed {
		return
	}
	l.lat.Clear()
	l.text = ""
	l.sentenceLen = 0
	l.nbest = 1
	l.state = stateCreated
}

// Close destroys the native lattice. It is idempotent; the underlying
// handle is destroyed exactly once.
func (l *Lattice) Close() error {
	if l.state == stateClosed {
		return nil
	}
	l.lat.Destroy()
	l.state = stateClosed
	return nil
}

// NodeIterator walks the node list of a parsed lattice. Each call to Next
// copies the surface and feature strings out of the engine's buffers, so
// returned Nodes outlive the iterator.
type NodeIterator struct {
	lat       *Lattice
	cur       binding.Node
	remaining int
	err       error
}

// Next returns the next node. It reports false when the iteration is
// exhausted or a decode error occurred; see Err.
func (it *NodeIterator) Next() (Node, bool) {
	if it.err != nil {
		return Node{}, false
	}
	for {
		for it.cur == nil {
			if it.remaining <= 1 || it.lat.state != stateParsed || !it.lat.lat.Next() {
				return Node{}, false
			}
			it.remaining--
			it.cur = it.lat.lat.BOSNode()
		}
		bn := it.cur
		it.cur = bn.Next()
		if bn.Stat() == binding.BosNode {
			continue
		}
		surface, err := it.lat.cdc.Decode(bn.Surface())
		if err != nil {
			it.err = err
			return Node{}, false
		}
		feature, err := it.lat.cdc.Decode(bn.Feature())
		if err != nil {
			it.err = err
			return Node{}, false
		}
		return newNode(bn, surface, feature), true
	}
}

// Err returns the first error encountered while walking, if any.
func (it *NodeIterator) Err() error { return it.err }

// Close releases the owning lattice. Idempotent.
func (it *NodeIterator) Close() error {
	it.cur = nil
	return it.lat.Close()
}
