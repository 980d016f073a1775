package natto

import (
	"fmt"

	"github.com/buruzaemon/natto-go/binding"
)

// NodeStat is a lattice node status.
type NodeStat = binding.NodeStat

// Node statuses.
const (
	NorNode = binding.NorNode
	UnkNode = binding.UnkNode
	BosNode = binding.BosNode
	EosNode = binding.EosNode
	EonNode = binding.EonNode
)

// Node is an immutable snapshot of one lattice node, taken at walk time.
// Surface and Feature are copied out of the engine's buffers immediately,
// so a Node stays valid after its lattice is cleared or re-parsed.
type Node struct {
	Surface  string   `json:"surface"`
	Feature  string   `json:"feature"`
	ID       int      `json:"id"`
	Length   int      `json:"length"`
	RLength  int      `json:"rlength"`
	RCAttr   int      `json:"rcattr"`
	LCAttr   int      `json:"lcattr"`
	PosID    int      `json:"posid"`
	CharType int      `json:"char_type"`
	Stat     NodeStat `json:"stat"`
	IsBest   bool     `json:"is_best"`
	Alpha    float32  `json:"alpha"`
	Beta     float32  `json:"beta"`
	Prob     float32  `json:"prob"`
	WCost    int      `json:"wcost"`
	Cost     int64    `json:"cost"`
}

func newNode(bn binding.Node, surface, feature string) Node {
	return Node{
		Surface:  surface,
		Feature:  feature,
		ID:       bn.ID(),
		Length:   bn.Length(),
		RLength:  bn.RLength(),
		RCAttr:   bn.RCAttr(),
		LCAttr:   bn.LCAttr(),
		PosID:    bn.PosID(),
		CharType: bn.CharType(),
		Stat:     bn.Stat(),
		IsBest:   bn.IsBest(),
		Alpha:    bn.Alpha(),
		Beta:     bn.Beta(),
		Prob:     bn.Prob(),
		WCost:    bn.WCost(),
		Cost:     bn.Cost(),
	}
}

// IsNor reports whether this is a normal node, defined in a dictionary.
func (n Node) IsNor() bool { return n.Stat == NorNode }

// IsUnk reports whether this is an unknown node, not in any dictionary.
func (n Node) IsUnk() bool { return n.Stat == UnkNode }

// IsBos reports whether this is a beginning-of-sentence node.
func (n Node) IsBos() bool { return n.Stat == BosNode }

// IsEos reports whether this is an end-of-sentence node.
func (n Node) IsEos() bool { return n.Stat == EosNode }

// IsEon reports whether this node ends an N-best node list.
func (n Node) IsEon() bool { return n.Stat == EonNode }

func (n Node) String() string {
	return fmt.Sprintf(`<natto.Node stat=%d, surface="%s", feature="%s">`,
		n.Stat, n.Surface, n.Feature)
}
