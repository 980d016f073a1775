// Package bindingtest provides a scripted in-memory implementation of the
// binding interfaces for tests: it records every constraint call, counts
// destroys, and serves canned node chains and to-string output.
package bindingtest

import (
	"bytes"
	"fmt"

	"github.com/buruzaemon/natto-go/binding"
)

// FakeNode is one scripted morpheme.
type FakeNode struct {
	SurfaceText string
	FeatureText string
	Stat        binding.NodeStat
	NodeID      int
	WordCost    int
	PathCost    int64
	MarginProb  float32
}

// Library is a scriptable binding.Library.
//
// Zero value is usable: it parses any sentence into a BOS node, one unknown
// node covering the whole sentence, and an EOS node. Set Chains to script
// explicit results (one chain per n-best result).
type Library struct {
	VersionString string

	// Failure injection.
	FailModel   bool
	FailTagger  bool
	FailLattice bool
	FailParse   bool
	FailToStr   bool
	ErrorText   string

	// Chains scripts the node chains returned after Parse, one per
	// n-best result. Markers (BOS/EOS) are added automatically.
	Chains [][]FakeNode

	ModelDestroys   int
	TaggerDestroys  int
	LatticeDestroys int

	// LastLattice is the most recently constructed lattice, kept so tests
	// can inspect the calls recorded on it.
	LastLattice *Lattice
}

func (f *Library) Version() string {
	if f.VersionString == "" {
		return "0.996-fake"
	}
	return f.VersionString
}

func (f *Library) NewModel(args []byte) binding.Model {
	if f.FailModel {
		return nil
	}
	return &model{lib: f, args: append([]byte(nil), args...)}
}

type model struct {
	lib  *Library
	args []byte
}

func (m *model) NewTagger() binding.Tagger {
	if m.lib.FailTagger {
		return nil
	}
	return &tagger{lib: m.lib}
}

func (m *model) NewLattice() binding.Lattice {
	if m.lib.FailLattice {
		return nil
	}
	lat := &Lattice{lib: m.lib}
	m.lib.LastLattice = lat
	return lat
}

func (m *model) DictionaryInfo() binding.Dictionary {
	return &dictInfo{filename: "/fake/sys.dic", charset: "UTF-8", size: 42, typ: binding.SysDic}
}

func (m *model) Destroy() { m.lib.ModelDestroys++ }

type dictInfo struct {
	filename, charset string
	size, typ         int
	next              binding.Dictionary
}

func (d *dictInfo) Next() binding.Dictionary { return d.next }
func (d *dictInfo) Filename() string         { return d.filename }
func (d *dictInfo) Charset() string          { return d.charset }
func (d *dictInfo) Size() int                { return d.size }
func (d *dictInfo) Type() int                { return d.typ }
func (d *dictInfo) LSize() int               { return 1316 }
func (d *dictInfo) RSize() int               { return 1316 }
func (d *dictInfo) Version() int             { return 102 }

type tagger struct {
	lib *Library
}

func (t *tagger) ParseLattice(lat binding.Lattice) bool {
	fl := lat.(*Lattice)
	if t.lib.FailParse {
		fl.err = t.lib.errorText()
		return false
	}
	if len(fl.sentence) == 0 {
		fl.err = "no sentence"
		return false
	}
	chains := t.lib.Chains
	if chains == nil {
		chains = [][]FakeNode{{{
			SurfaceText: string(fl.sentence),
			FeatureText: "*",
			Stat:        binding.UnkNode,
		}}}
	}
	fl.results = make([]*node, 0, len(chains))
	for _, chain := range chains {
		fl.results = append(fl.results, buildChain(chain))
	}
	fl.cursor = 0
	fl.err = ""
	return true
}

func (t *tagger) Strerror() string { return t.lib.errorText() }
func (t *tagger) Destroy()         { t.lib.TaggerDestroys++ }

func (f *Library) errorText() string {
	if f.ErrorText == "" {
		return "fake engine error"
	}
	return f.ErrorText
}

func buildChain(morphs []FakeNode) *node {
	nodes := []*node{{feature: "BOS/EOS,*,*,*,*,*,*,*,*", stat: binding.BosNode}}
	for _, m := range morphs {
		nodes = append(nodes, &node{
			surface: m.SurfaceText,
			feature: m.FeatureText,
			stat:    m.Stat,
			id:      m.NodeID,
			wcost:   m.WordCost,
			cost:    m.PathCost,
			prob:    m.MarginProb,
		})
	}
	nodes = append(nodes, &node{feature: "BOS/EOS,*,*,*,*,*,*,*,*", stat: binding.EosNode})
	for i := 1; i < len(nodes); i++ {
		nodes[i-1].next = nodes[i]
		nodes[i].prev = nodes[i-1]
	}
	return nodes[0]
}

// BoundaryCall records one SetBoundaryConstraint invocation in order.
type BoundaryCall struct {
	Pos  int
	Type binding.BoundaryType
}

// FeatureCall records one SetFeatureConstraint invocation in order.
type FeatureCall struct {
	Begin, End int
	Feature    string
}

// Lattice records everything the session does to it.
type Lattice struct {
	lib      *Library
	sentence []byte
	req      binding.RequestType
	theta    float64
	cleared  int

	Boundaries []BoundaryCall
	Features   []FeatureCall

	results []*node
	cursor  int
	err     string
}

func (l *Lattice) SetSentence(sentence []byte) {
	l.sentence = append([]byte(nil), sentence...)
}

func (l *Lattice) Sentence() []byte { return l.sentence }

func (l *Lattice) SetRequestType(rt binding.RequestType) { l.req = rt }
func (l *Lattice) AddRequestType(rt binding.RequestType) { l.req |= rt }
func (l *Lattice) RequestType() binding.RequestType      { return l.req }

func (l *Lattice) SetBoundaryConstraint(pos int, bt binding.BoundaryType) {
	l.Boundaries = append(l.Boundaries, BoundaryCall{Pos: pos, Type: bt})
}

// BoundaryConstraint returns the last recorded type for pos.
func (l *Lattice) BoundaryConstraint(pos int) binding.BoundaryType {
	bt := binding.AnyBoundary
	for _, c := range l.Boundaries {
		if c.Pos == pos {
			bt = c.Type
		}
	}
	return bt
}

func (l *Lattice) SetFeatureConstraint(begin, end int, feature []byte) {
	l.Features = append(l.Features, FeatureCall{Begin: begin, End: end, Feature: string(feature)})
}

func (l *Lattice) SetTheta(theta float64) { l.theta = theta }

func (l *Lattice) Next() bool {
	if l.cursor+1 < len(l.results) {
		l.cursor++
		return true
	}
	return false
}

func (l *Lattice) ToString() []byte {
	if l.lib.FailToStr || len(l.results) == 0 {
		return nil
	}
	return chainString(l.results[l.cursor])
}

func (l *Lattice) NBestToString(n int) []byte {
	if l.lib.FailToStr || len(l.results) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for i := 0; i < n && i < len(l.results); i++ {
		buf.Write(chainString(l.results[i]))
	}
	return buf.Bytes()
}

func chainString(head *node) []byte {
	var buf bytes.Buffer
	for nd := head; nd != nil; nd = nd.next {
		switch nd.stat {
		case binding.BosNode:
		case binding.EosNode, binding.EonNode:
			buf.WriteString("EOS\n")
		default:
			fmt.Fprintf(&buf, "%s\t%s\n", nd.surface, nd.feature)
		}
	}
	return buf.Bytes()
}

func (l *Lattice) BOSNode() binding.Node {
	if len(l.results) == 0 {
		return nil
	}
	return l.results[l.cursor]
}

func (l *Lattice) Strerror() string { return l.err }

func (l *Lattice) Clear() {
	l.sentence = nil
	l.Boundaries = nil
	l.Features = nil
	l.results = nil
	l.cursor = 0
	l.cleared++
}

func (l *Lattice) Destroy() { l.lib.LatticeDestroys++ }

type node struct {
	prev, next *node
	surface    string
	feature    string
	stat       binding.NodeStat
	id         int
	wcost      int
	cost       int64
	prob       float32
}

func (n *node) Next() binding.Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *node) Prev() binding.Node {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *node) Surface() []byte            { return []byte(n.surface) }
func (n *node) Feature() []byte            { return []byte(n.feature) }
func (n *node) ID() int                    { return n.id }
func (n *node) Length() int                { return len(n.surface) }
func (n *node) RLength() int               { return len(n.surface) }
func (n *node) RCAttr() int                { return 0 }
func (n *node) LCAttr() int                { return 0 }
func (n *node) PosID() int                 { return 0 }
func (n *node) CharType() int              { return 0 }
func (n *node) Stat() binding.NodeStat     { return n.stat }
func (n *node) IsBest() bool               { return true }
func (n *node) Alpha() float32             { return 0 }
func (n *node) Beta() float32              { return 0 }
func (n *node) Prob() float32              { return n.prob }
func (n *node) WCost() int                 { return n.wcost }
func (n *node) Cost() int64                { return n.cost }
