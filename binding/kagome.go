package binding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// NewKagome returns an embedded Library backed by the kagome morphological
// analyzer, so natto-go works without libmecab. dictName selects the
// dictionary: "" or "ipa" for IPADIC, "uni" for UniDic.
//
// The embedded engine is 1-best only: Next reports exhaustion after the
// first result chain, and NBestToString formats the single best path.
func NewKagome(dictName string) (Library, error) {
	var d *dict.Dict
	name := strings.ToLower(strings.TrimSpace(dictName))
	switch name {
	case "", "ipa":
		d = ipa.Dict()
		name = "ipa"
	case "uni":
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("binding: unknown embedded dictionary %q", dictName)
	}
	return &kagomeLibrary{d: d, name: name}, nil
}

type kagomeLibrary struct {
	d    *dict.Dict
	name string
}

func (l *kagomeLibrary) Version() string { return "kagome:" + l.name }

func (l *kagomeLibrary) NewModel(args []byte) Model {
	t, err := tokenizer.New(l.d, tokenizer.OmitBosEos())
	if err != nil {
		return nil
	}
	return &kagomeModel{lib: l, tok: t}
}

type kagomeModel struct {
	lib       *kagomeLibrary
	tok       *tokenizer.Tokenizer
	destroyed bool
}

func (m *kagomeModel) NewTagger() Tagger   { return &kagomeTagger{model: m} }
func (m *kagomeModel) NewLattice() Lattice { return &kagomeLattice{} }

func (m *kagomeModel) DictionaryInfo() Dictionary {
	return &kagomeDictInfo{
		filename: "embedded:" + m.lib.name,
		charset:  "UTF-8",
		size:     len(m.lib.d.Morphs),
		typ:      SysDic,
	}
}

func (m *kagomeModel) Destroy() { m.destroyed = true }

type kagomeDictInfo struct {
	filename string
	charset  string
	size     int
	typ      int
}

func (d *kagomeDictInfo) Next() Dictionary { return nil }
func (d *kagomeDictInfo) Filename() string { return d.filename }
func (d *kagomeDictInfo) Charset() string  { return d.charset }
func (d *kagomeDictInfo) Size() int        { return d.size }
func (d *kagomeDictInfo) Type() int        { return d.typ }
func (d *kagomeDictInfo) LSize() int       { return 0 }
func (d *kagomeDictInfo) RSize() int       { return 0 }
func (d *kagomeDictInfo) Version() int     { return 0 }

type kagomeTagger struct {
	model     *kagomeModel
	destroyed bool
	err       string
}

func (t *kagomeTagger) Strerror() string { return t.err }
func (t *kagomeTagger) Destroy()         { t.destroyed = true }

func (t *kagomeTagger) ParseLattice(lat Lattice) bool {
	kl, ok := lat.(*kagomeLattice)
	if !ok {
		t.err = "lattice does not belong to this engine"
		return false
	}
	if kl.sentence == nil {
		kl.err = "no sentence set"
		return false
	}
	nodes, err := t.segment(kl)
	if err != nil {
		kl.err = err.Error()
		return false
	}
	kl.bos = link(nodes)
	kl.err = ""
	kl.spent = false
	return true
}

// featureSpan is a byte range forced to be one morpheme with a feature.
type featureSpan struct {
	begin, end int
	feature    []byte
}

// segment applies the lattice's boundary and feature constraints to the
// sentence and tokenizes the unconstrained gaps with kagome.
func (t *kagomeTagger) segment(kl *kagomeLattice) ([]*kagomeNode, error) {
	text := string(kl.sentence)
	n := len(text)

	nodes := []*kagomeNode{newMarkerNode(BosNode)}

	// Split the sentence at token-boundary offsets. A span whose interior
	// carries an inside-token mark (or a feature constraint) is emitted as
	// one forced morpheme; any other span is tokenized freely.
	begin := 0
	for begin < n {
		end := begin + 1
		for end < n && kl.boundaries[end] != TokenBoundary {
			end++
		}
		if fs := kl.featureAt(begin, end); fs != nil {
			nodes = append(nodes, t.forcedNode(text[begin:end], fs.feature))
		} else if kl.insideMarked(begin, end) {
			nodes = append(nodes, t.forcedNode(text[begin:end], nil))
		} else {
			nodes = append(nodes, t.freeNodes(text[begin:end])...)
		}
		begin = end
	}

	nodes = append(nodes, newMarkerNode(EosNode))
	return nodes, nil
}

// freeNodes tokenizes an unconstrained span with kagome.
func (t *kagomeTagger) freeNodes(span string) []*kagomeNode {
	var out []*kagomeNode
	for _, kt := range t.model.tok.Tokenize(span) {
		stat := NorNode
		if kt.Class == tokenizer.UNKNOWN {
			stat = UnkNode
		}
		out = append(out, &kagomeNode{
			surface: []byte(kt.Surface),
			feature: []byte(strings.Join(kt.Features(), ",")),
			id:      kt.ID,
			stat:    stat,
			isbest:  true,
		})
	}
	return out
}

// forcedNode emits a whole span as one morpheme. When the span happens to
// be a single dictionary entry its feature is reused; otherwise the node is
// unknown with the caller-supplied feature, or "*" when none was given.
func (t *kagomeTagger) forcedNode(span string, feature []byte) *kagomeNode {
	nd := &kagomeNode{
		surface: []byte(span),
		feature: []byte("*"),
		stat:    UnkNode,
		isbest:  true,
	}
	if toks := t.model.tok.Tokenize(span); len(toks) == 1 && toks[0].Class != tokenizer.UNKNOWN {
		nd.feature = []byte(strings.Join(toks[0].Features(), ","))
		nd.id = toks[0].ID
		nd.stat = NorNode
	}
	if len(feature) > 0 {
		nd.feature = append([]byte(nil), feature...)
		nd.stat = UnkNode
	}
	return nd
}

func newMarkerNode(stat NodeStat) *kagomeNode {
	return &kagomeNode{feature: []byte("BOS/EOS,*,*,*,*,*,*,*,*"), stat: stat, isbest: true}
}

func link(nodes []*kagomeNode) *kagomeNode {
	for i, nd := range nodes {
		nd.length = len(nd.surface)
		nd.rlength = nd.length
		if i > 0 {
			nd.prev = nodes[i-1]
			nodes[i-1].next = nd
		}
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

type kagomeLattice struct {
	sentence   []byte
	req        RequestType
	boundaries map[int]BoundaryType
	features   []featureSpan
	theta      float64
	bos        *kagomeNode
	err        string
	spent      bool
	destroyed  bool
}

func (l *kagomeLattice) SetSentence(sentence []byte) {
	l.sentence = append([]byte(nil), sentence...)
	l.bos = nil
}

func (l *kagomeLattice) Sentence() []byte { return l.sentence }

func (l *kagomeLattice) SetRequestType(rt RequestType) { l.req = rt }
func (l *kagomeLattice) AddRequestType(rt RequestType) { l.req |= rt }
func (l *kagomeLattice) RequestType() RequestType      { return l.req }

func (l *kagomeLattice) SetBoundaryConstraint(pos int, bt BoundaryType) {
	if l.boundaries == nil {
		l.boundaries = make(map[int]BoundaryType)
	}
	l.boundaries[pos] = bt
}

func (l *kagomeLattice) BoundaryConstraint(pos int) BoundaryType {
	return l.boundaries[pos]
}

func (l *kagomeLattice) SetFeatureConstraint(begin, end int, feature []byte) {
	l.features = append(l.features, featureSpan{
		begin:   begin,
		end:     end,
		feature: append([]byte(nil), feature...),
	})
	// A feature constraint implies hard token boundaries around the span.
	l.SetBoundaryConstraint(begin, TokenBoundary)
	l.SetBoundaryConstraint(end, TokenBoundary)
	for i := begin + 1; i < end; i++ {
		l.SetBoundaryConstraint(i, InsideToken)
	}
}

func (l *kagomeLattice) SetTheta(theta float64) { l.theta = theta }

func (l *kagomeLattice) featureAt(begin, end int) *featureSpan {
	for i := range l.features {
		if l.features[i].begin == begin && l.features[i].end == end {
			return &l.features[i]
		}
	}
	return nil
}

func (l *kagomeLattice) insideMarked(begin, end int) bool {
	for i := begin + 1; i < end; i++ {
		if l.boundaries[i] == InsideToken {
			return true
		}
	}
	return false
}

// Next reports whether another n-best result is available. The embedded
// engine produces a single result chain.
func (l *kagomeLattice) Next() bool {
	if l.bos == nil || l.spent {
		return false
	}
	l.spent = true
	return false
}

func (l *kagomeLattice) ToString() []byte {
	if l.bos == nil {
		return nil
	}
	var buf bytes.Buffer
	for nd := Node(l.bos); nd != nil; nd = nd.Next() {
		switch nd.Stat() {
		case BosNode:
		case EosNode, EonNode:
			buf.WriteString("EOS\n")
		default:
			buf.Write(nd.Surface())
			buf.WriteByte('\t')
			buf.Write(nd.Feature())
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func (l *kagomeLattice) NBestToString(n int) []byte {
	// 1-best only; the single chain is the best and only result.
	return l.ToString()
}

func (l *kagomeLattice) BOSNode() Node {
	if l.bos == nil {
		return nil
	}
	return l.bos
}

func (l *kagomeLattice) Strerror() string { return l.err }

func (l *kagomeLattice) Clear() {
	l.sentence = nil
	l.boundaries = nil
	l.features = nil
	l.bos = nil
	l.err = ""
	l.spent = false
}

func (l *kagomeLattice) Destroy() { l.destroyed = true }

type kagomeNode struct {
	prev, next *kagomeNode
	surface    []byte
	feature    []byte
	id         int
	length     int
	rlength    int
	stat       NodeStat
	isbest     bool
}

func (n *kagomeNode) Next() Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *kagomeNode) Prev() Node {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *kagomeNode) Surface() []byte { return n.surface }
func (n *kagomeNode) Feature() []byte { return n.feature }
func (n *kagomeNode) ID() int         { return n.id }
func (n *kagomeNode) Length() int     { return n.length }
func (n *kagomeNode) RLength() int    { return n.rlength }
func (n *kagomeNode) RCAttr() int     { return 0 }
func (n *kagomeNode) LCAttr() int     { return 0 }
func (n *kagomeNode) PosID() int      { return 0 }
func (n *kagomeNode) CharType() int   { return 0 }
func (n *kagomeNode) Stat() NodeStat  { return n.stat }
func (n *kagomeNode) IsBest() bool    { return n.isbest }
func (n *kagomeNode) Alpha() float32  { return 0 }
func (n *kagomeNode) Beta() float32   { return 0 }
func (n *kagomeNode) Prob() float32   { return 0 }
func (n *kagomeNode) WCost() int      { return 0 }
func (n *kagomeNode) Cost() int64     { return 0 }
