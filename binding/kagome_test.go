package binding

import (
	"strings"
	"testing"
)

const gardenSentence = "にわにはにわにわとりがいる。"

func newKagomeSession(t *testing.T) (Tagger, Lattice) {
	t.Helper()
	lib, err := NewKagome("")
	if err != nil {
		t.Fatal(err)
	}
	model := lib.NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	tagger := model.NewTagger()
	if tagger == nil {
		t.Fatal("NewTagger returned nil")
	}
	lat := model.NewLattice()
	if lat == nil {
		t.Fatal("NewLattice returned nil")
	}
	return tagger, lat
}

func surfaces(lat Lattice) []string {
	var out []string
	for nd := lat.BOSNode(); nd != nil; nd = nd.Next() {
		if nd.Stat() == BosNode || nd.Stat() == EosNode {
			continue
		}
		out = append(out, string(nd.Surface()))
	}
	return out
}

func TestKagomeUnconstrainedParse(t *testing.T) {
	tagger, lat := newKagomeSession(t)

	lat.SetSentence([]byte(gardenSentence))
	if !tagger.ParseLattice(lat) {
		t.Fatalf("ParseLattice failed: %s", lat.Strerror())
	}

	bos := lat.BOSNode()
	if bos == nil || bos.Stat() != BosNode {
		t.Fatal("walk does not start at a BOS marker")
	}
	ss := surfaces(lat)
	if len(ss) == 0 {
		t.Fatal("no morphemes")
	}
	if got := strings.Join(ss, ""); got != gardenSentence {
		t.Errorf("surfaces reconstruct %q, want %q", got, gardenSentence)
	}

	var last Node
	for nd := bos; nd != nil; nd = nd.Next() {
		last = nd
	}
	if last.Stat() != EosNode {
		t.Errorf("walk ends with stat %d, want EOS", last.Stat())
	}
}

func TestKagomeBoundaryConstraints(t *testing.T) {
	tagger, lat := newKagomeSession(t)

	lat.SetSentence([]byte(gardenSentence))
	// Force にわ [0,6) and はにわにわとり [9,30) to be single morphemes,
	// leaving に [6,9) and がいる。 [30,42) to the engine.
	for _, pos := range []int{0, 6, 9, 30, 42} {
		lat.SetBoundaryConstraint(pos, TokenBoundary)
	}
	for pos := 1; pos < 6; pos++ {
		lat.SetBoundaryConstraint(pos, InsideToken)
	}
	for pos := 10; pos < 30; pos++ {
		lat.SetBoundaryConstraint(pos, InsideToken)
	}

	if !tagger.ParseLattice(lat) {
		t.Fatalf("ParseLattice failed: %s", lat.Strerror())
	}
	ss := surfaces(lat)
	if got := strings.Join(ss, ""); got != gardenSentence {
		t.Errorf("surfaces reconstruct %q, want %q", got, gardenSentence)
	}
	if ss[0] != "にわ" {
		t.Errorf("first surface = %q, want にわ", ss[0])
	}
	joined := strings.Join(ss, "|")
	if !strings.Contains(joined, "はにわにわとり") {
		t.Errorf("constrained span was split: %v", ss)
	}
}

func TestKagomeFeatureConstraint(t *testing.T) {
	tagger, lat := newKagomeSession(t)

	const feature = "名詞,一般,*,*,*,*,にわ,ニワ,ニワ"
	lat.SetSentence([]byte(gardenSentence))
	lat.SetFeatureConstraint(0, 6, []byte(feature))
	lat.SetBoundaryConstraint(42, TokenBoundary)

	if !tagger.ParseLattice(lat) {
		t.Fatalf("ParseLattice failed: %s", lat.Strerror())
	}
	ss := surfaces(lat)
	if len(ss) == 0 || ss[0] != "にわ" {
		t.Fatalf("surfaces = %v, want にわ first", ss)
	}
	for nd := lat.BOSNode(); nd != nil; nd = nd.Next() {
		if string(nd.Surface()) == "にわ" {
			if got := string(nd.Feature()); got != feature {
				t.Errorf("feature = %q, want %q", got, feature)
			}
			break
		}
	}
}

func TestKagomeToString(t *testing.T) {
	tagger, lat := newKagomeSession(t)

	lat.SetSentence([]byte(gardenSentence))
	if !tagger.ParseLattice(lat) {
		t.Fatalf("ParseLattice failed: %s", lat.Strerror())
	}
	out := string(lat.ToString())
	if !strings.HasSuffix(out, "EOS\n") {
		t.Errorf("output does not end with EOS:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "EOS" {
			continue
		}
		if !strings.Contains(line, "\t") {
			t.Errorf("line %q has no feature column", line)
		}
	}
}

func TestKagomeParseRequiresSentence(t *testing.T) {
	tagger, lat := newKagomeSession(t)
	if tagger.ParseLattice(lat) {
		t.Fatal("ParseLattice succeeded without a sentence")
	}
	if lat.Strerror() == "" {
		t.Error("no error text after failed parse")
	}
}

func TestKagomeClearResets(t *testing.T) {
	tagger, lat := newKagomeSession(t)

	lat.SetSentence([]byte(gardenSentence))
	lat.SetBoundaryConstraint(0, TokenBoundary)
	if !tagger.ParseLattice(lat) {
		t.Fatalf("ParseLattice failed: %s", lat.Strerror())
	}
	lat.Clear()
	if lat.BOSNode() != nil {
		t.Error("BOSNode survives Clear")
	}
	if lat.Sentence() != nil {
		t.Error("sentence survives Clear")
	}

	lat.SetSentence([]byte("すもももももももものうち"))
	if !tagger.ParseLattice(lat) {
		t.Fatalf("re-parse after Clear failed: %s", lat.Strerror())
	}
	if got := strings.Join(surfaces(lat), ""); got != "すもももももももものうち" {
		t.Errorf("surfaces reconstruct %q", got)
	}
}

func TestKagomeUnknownDictionary(t *testing.T) {
	if _, err := NewKagome("klingon"); err == nil {
		t.Error("unknown dictionary accepted")
	}
}

func TestKagomeDictionaryInfo(t *testing.T) {
	lib, err := NewKagome("")
	if err != nil {
		t.Fatal(err)
	}
	model := lib.NewModel(nil)
	d := model.DictionaryInfo()
	if d == nil {
		t.Fatal("no dictionary info")
	}
	if d.Charset() != "UTF-8" {
		t.Errorf("Charset = %q", d.Charset())
	}
	if d.Type() != SysDic {
		t.Errorf("Type = %d, want system", d.Type())
	}
	if d.Next() != nil {
		t.Error("embedded dictionary list has more than one entry")
	}
}
