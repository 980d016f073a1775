package natto

import (
	"errors"
	"strings"
	"testing"

	"github.com/buruzaemon/natto-go/splitter"
)

func newEmbeddedTagger(t *testing.T) *MeCab {
	t.Helper()
	m, err := NewEmbedded("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestEmbeddedParse(t *testing.T) {
	m := newEmbeddedTagger(t)

	out, err := m.Parse(gardenText)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "EOS") {
		t.Errorf("output does not end with EOS:\n%s", out)
	}
	if !strings.Contains(out, "\t") {
		t.Errorf("output has no feature columns:\n%s", out)
	}
}

func TestEmbeddedBoundaryConstraints(t *testing.T) {
	m := newEmbeddedTagger(t)

	nodes, err := m.ParseToNodes(gardenText,
		WithBoundaryConstraints("にわ|はにわにわとり", true))
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) == 0 {
		t.Fatal("no nodes")
	}

	var surfaces []string
	for _, n := range nodes {
		if n.IsEos() {
			continue
		}
		surfaces = append(surfaces, n.Surface)
	}
	if got := strings.Join(surfaces, ""); got != gardenText {
		t.Errorf("surfaces reconstruct %q, want %q", got, gardenText)
	}
	if surfaces[0] != "にわ" {
		t.Errorf("first surface = %q, want にわ", surfaces[0])
	}
	found := false
	for _, s := range surfaces {
		if s == "はにわにわとり" {
			found = true
		}
	}
	if !found {
		t.Errorf("constrained span はにわにわとり was split: %v", surfaces)
	}
	last := nodes[len(nodes)-1]
	if !last.IsEos() {
		t.Errorf("last node stat = %d, want EOS", last.Stat)
	}
}

func TestEmbeddedFeatureConstraints(t *testing.T) {
	m := newEmbeddedTagger(t)

	const feature = "名詞,固有名詞,*,*,*,*,はにわにわとり,ハニワニワトリ,ハニワニワトリ"
	nodes, err := m.ParseToNodes(gardenText,
		WithFeatureConstraints([]splitter.FeaturePair{
			{Morpheme: "はにわにわとり", Feature: feature},
		}))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range nodes {
		if n.Surface == "はにわにわとり" {
			found = true
			if n.Feature != feature {
				t.Errorf("feature = %q, want %q", n.Feature, feature)
			}
			if !n.IsUnk() {
				t.Errorf("forced morpheme stat = %d, want unknown", n.Stat)
			}
		}
	}
	if !found {
		t.Errorf("forced morpheme not in walk: %v", nodes)
	}
}

func TestEmbeddedDictionaryInfo(t *testing.T) {
	m := newEmbeddedTagger(t)

	dicts := m.Dicts()
	if len(dicts) != 1 {
		t.Fatalf("got %d dicts, want 1", len(dicts))
	}
	d := dicts[0]
	if !d.IsSysDic() {
		t.Errorf("dict type = %d, want system", d.Type)
	}
	if !strings.HasPrefix(d.FilePath, "embedded:") {
		t.Errorf("FilePath = %q", d.FilePath)
	}
	if d.Size == 0 {
		t.Error("dict reports zero morphemes")
	}
	if !strings.HasPrefix(m.Version(), "kagome:") {
		t.Errorf("Version = %q", m.Version())
	}
}

func TestEmbeddedUnknownDictionary(t *testing.T) {
	_, err := NewEmbedded("-d klingon")
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("error is %T (%v), want *ConstructionError", err, err)
	}
}
