// Package binding defines the native MeCab API surface consumed by natto-go
// as Go interfaces, together with the constants from mecab.h.
//
// Three implementations exist: the dlopen-backed cgo binding to libmecab
// (build tag "mecab"), the embedded kagome engine (NewKagome), and a
// scripted fake for tests (package bindingtest). Callers never see raw
// native pointers; each handle is destroyed exactly once by its owner.
package binding

// RequestType flags for lattice parsing, bitwise-composable.
// Values match MECAB_* in mecab.h.
type RequestType int

const (
	OneBest          RequestType = 1
	NBest            RequestType = 2
	Partial          RequestType = 4
	MarginalProb     RequestType = 8
	Alternative      RequestType = 16
	AllMorphs        RequestType = 32
	AllocateSentence RequestType = 64
)

// BoundaryType is a per-byte-offset directive for boundary constraints.
type BoundaryType int

const (
	AnyBoundary   BoundaryType = 0
	TokenBoundary BoundaryType = 1
	InsideToken   BoundaryType = 2
)

// NodeStat is the status of a lattice node.
type NodeStat int

const (
	NorNode NodeStat = 0 // normal node defined in the dictionary
	UnkNode NodeStat = 1 // unknown node, not in any dictionary
	BosNode NodeStat = 2 // virtual beginning-of-sentence node
	EosNode NodeStat = 3 // virtual end-of-sentence node
	EonNode NodeStat = 4 // virtual end of an N-best node list
)

// Dictionary types.
const (
	SysDic = 0
	UsrDic = 1
	UnkDic = 2
)

// Library is a loaded native engine. It is the factory for models and the
// source of the engine version string.
type Library interface {
	// NewModel constructs a model from an encoded options flag string.
	// A nil Model means the native constructor returned NULL.
	NewModel(args []byte) Model
	Version() string
}

// Model owns the dictionaries and parameters shared by taggers.
type Model interface {
	NewTagger() Tagger
	NewLattice() Lattice
	// DictionaryInfo returns the head of a nil-terminated linked list.
	DictionaryInfo() Dictionary
	Destroy()
}

// Tagger performs the actual parse over a lattice.
type Tagger interface {
	// ParseLattice runs the engine; false means failure, with detail
	// available from the lattice's Strerror.
	ParseLattice(lat Lattice) bool
	Strerror() string
	Destroy()
}

// Lattice holds one sentence, its request type and constraints, and after a
// successful parse the resulting node list. Offsets are byte offsets into
// the encoded sentence.
type Lattice interface {
	SetSentence(sentence []byte)
	Sentence() []byte
	SetRequestType(rt RequestType)
	AddRequestType(rt RequestType)
	RequestType() RequestType
	SetBoundaryConstraint(pos int, bt BoundaryType)
	BoundaryConstraint(pos int) BoundaryType
	SetFeatureConstraint(begin, end int, feature []byte)
	SetTheta(theta float64)

	// Next advances to the next n-best result; false when exhausted.
	Next() bool
	// ToString formats the current parse; nil means native failure.
	ToString() []byte
	// NBestToString formats the top n parses; nil means native failure.
	NBestToString(n int) []byte
	// BOSNode returns the beginning-of-sentence node of the current
	// result, or nil if there is none.
	BOSNode() Node
	Strerror() string
	Clear()
	Destroy()
}

// Node is one element of the native node list. Implementations may return
// pointers into engine-owned buffers from Surface and Feature; callers must
// copy before the lattice is cleared, re-parsed or destroyed.
type Node interface {
	Next() Node // nil-terminated
	Prev() Node
	Surface() []byte
	Feature() []byte
	ID() int
	Length() int
	RLength() int
	RCAttr() int
	LCAttr() int
	PosID() int
	CharType() int
	Stat() NodeStat
	IsBest() bool
	Alpha() float32
	Beta() float32
	Prob() float32
	WCost() int
	Cost() int64
}

// Dictionary is one element of the dictionary-info linked list.
type Dictionary interface {
	Next() Dictionary // nil-terminated
	Filename() string
	Charset() string
	Size() int
	Type() int
	LSize() int
	RSize() int
	Version() int
}
