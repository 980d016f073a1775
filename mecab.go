package natto

import (
	"fmt"
	"strings"

	"github.com/buruzaemon/natto-go/binding"
	"github.com/buruzaemon/natto-go/codec"
	"github.com/buruzaemon/natto-go/splitter"
)

// MeCab wraps one morphological-analyzer model and tagger pair. Parse and
// ParseToNodes are the high-level entry points; NewLattice hands out a
// session for callers that drive the lattice themselves. A MeCab is
// single-owner: share results, not the handle.
type MeCab struct {
	lib    binding.Library
	model  binding.Model
	tagger binding.Tagger
	cdc    *codec.Codec

	options Options
	dicts   []DictionaryInfo
	version string
	libpath string
	closed  bool
}

// New loads the MeCab shared library discovered from the environment and
// builds a tagger with the given option string. Every failure along the
// way, from an unresolvable library path to a rejected option, surfaces
// as a ConstructionError.
func New(options string) (*MeCab, error) {
	env, err := DiscoverEnv()
	if err != nil {
		return nil, &ConstructionError{Reason: "could not locate the MeCab library", Err: err}
	}
	lib, err := binding.Open(env.LibPath)
	if err != nil {
		return nil, &ConstructionError{
			Reason: fmt.Sprintf("could not load %s", env.LibPath), Err: err}
	}
	m, err := construct(lib, env.Charset, options)
	if err != nil {
		return nil, err
	}
	m.libpath = env.LibPath
	return m, nil
}

// NewEmbedded builds a tagger on the bundled pure-Go engine. The dicdir
// option selects the dictionary ("ipa" by default, "uni" for UniDic);
// text is always UTF-8.
func NewEmbedded(options string) (*MeCab, error) {
	opts, err := ParseOptionArgs(options)
	if err != nil {
		return nil, &ConstructionError{Reason: "invalid options", Err: err}
	}
	lib, err := binding.NewKagome(opts["dicdir"])
	if err != nil {
		return nil, &ConstructionError{Reason: "could not load embedded dictionary", Err: err}
	}
	return constructParsed(lib, "utf8", opts)
}

// NewWithLibrary builds a tagger over an already-loaded library. Used by
// tests and by callers that manage library loading themselves.
func NewWithLibrary(lib binding.Library, charset, options string) (*MeCab, error) {
	return construct(lib, charset, options)
}

func construct(lib binding.Library, charset, options string) (*MeCab, error) {
	opts, err := ParseOptionArgs(options)
	if err != nil {
		return nil, &ConstructionError{Reason: "invalid options", Err: err}
	}
	return constructParsed(lib, charset, opts)
}

func constructParsed(lib binding.Library, charset string, opts Options) (*MeCab, error) {
	cdc, err := codec.New(charset)
	if err != nil {
		return nil, &ConstructionError{Reason: "unsupported charset", Err: err}
	}
	args, err := cdc.Encode(BuildOptionsString(opts))
	if err != nil {
		return nil, &ConstructionError{Reason: "could not encode options", Err: err}
	}

	model := lib.NewModel(args)
	if model == nil {
		return nil, &ConstructionError{
			Reason: fmt.Sprintf("could not create model with options %q", BuildOptionsString(opts))}
	}
	tagger := model.NewTagger()
	if tagger == nil {
		model.Destroy()
		return nil, &ConstructionError{Reason: "could not create tagger"}
	}

	dicts := walkDictionaries(model)
	// The system dictionary knows its own charset better than the
	// environment does.
	if len(dicts) > 0 && dicts[0].Charset != "" {
		if c, err := codec.New(dicts[0].Charset); err == nil {
			cdc = c
		}
	}

	m := &MeCab{
		lib:     lib,
		model:   model,
		tagger:  tagger,
		cdc:     cdc,
		options: opts,
		dicts:   dicts,
		version: lib.Version(),
	}
	tracer().Infof("mecab ready: version=%s dicts=%d charset=%s", m.version, len(dicts), cdc.Name())
	return m, nil
}

// ParseOption adjusts a single Parse or ParseToNodes call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	boundaryPattern string
	anyBoundary     bool
	featurePairs    []splitter.FeaturePair
	nbest           int
	allMorphs       bool
	partial         bool
	marginal        bool
	theta           float64
	hasTheta        bool
}

// WithBoundaryConstraints splits the sentence on pattern and keeps every
// matched span whole in the parse. When anyBoundary is true, unmatched
// spans are left for the engine to segment freely; otherwise they too are
// kept whole.
func WithBoundaryConstraints(pattern string, anyBoundary bool) ParseOption {
	return func(c *parseConfig) {
		c.boundaryPattern = pattern
		c.anyBoundary = anyBoundary
	}
}

// WithFeatureConstraints forces each occurrence of a morpheme to parse as
// one token carrying the paired feature string. Earlier pairs win.
func WithFeatureConstraints(pairs []splitter.FeaturePair) ParseOption {
	return func(c *parseConfig) { c.featurePairs = pairs }
}

// WithNBest requests the top n parses, overriding the tagger-level nbest
// option for this call.
func WithNBest(n int) ParseOption {
	return func(c *parseConfig) { c.nbest = n }
}

// WithAllMorphs includes every morpheme, not only the best path.
func WithAllMorphs() ParseOption {
	return func(c *parseConfig) { c.allMorphs = true }
}

// WithPartial enables partial-parsing mode for this call.
func WithPartial() ParseOption {
	return func(c *parseConfig) { c.partial = true }
}

// WithMarginal computes marginal probabilities for this call.
func WithMarginal() ParseOption {
	return func(c *parseConfig) { c.marginal = true }
}

// WithTheta overrides the temperature parameter for this call.
func WithTheta(theta float64) ParseOption {
	return func(c *parseConfig) {
		c.theta = theta
		c.hasTheta = true
	}
}

// NewLattice opens a fresh parsing session configured with the tagger's
// option-level request flags. The caller owns the session and must Close
// it.
func (m *MeCab) NewLattice() (*Lattice, error) {
	if m.closed {
		return nil, &ConstructionError{Reason: "tagger is closed"}
	}
	lat, err := newLattice(m.model, m.tagger, m.cdc)
	if err != nil {
		return nil, err
	}
	lat.SetRequestType(m.baseRequestType())
	if n := m.options.IntOpt("nbest", 1); n > 1 {
		if err := lat.SetNBest(n); err != nil {
			lat.Close()
			return nil, err
		}
	}
	if _, ok := m.options["theta"]; ok {
		lat.SetTheta(m.options.FloatOpt("theta", 0))
	}
	return lat, nil
}

func (m *MeCab) baseRequestType() binding.RequestType {
	rt := binding.OneBest
	if m.options.IntOpt("nbest", 1) > 1 {
		rt = binding.NBest
	}
	if m.options.BoolOpt("all_morphs") {
		rt |= binding.AllMorphs
	}
	if m.options.BoolOpt("partial") {
		rt |= binding.Partial
	}
	if m.options.BoolOpt("marginal") {
		rt |= binding.MarginalProb
	}
	if m.options.BoolOpt("allocate_sentence") {
		rt |= binding.AllocateSentence
	}
	return rt
}

func (m *MeCab) session(text string, popts []ParseOption) (*Lattice, error) {
	var cfg parseConfig
	for _, o := range popts {
		o(&cfg)
	}
	lat, err := m.NewLattice()
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			lat.Close()
		}
	}()

	if cfg.allMorphs {
		lat.AddRequestType(binding.AllMorphs)
	}
	if cfg.partial {
		lat.AddRequestType(binding.Partial)
	}
	if cfg.marginal {
		lat.AddRequestType(binding.MarginalProb)
	}
	if cfg.hasTheta {
		lat.SetTheta(cfg.theta)
	}
	if cfg.nbest > 0 {
		if err := lat.SetNBest(cfg.nbest); err != nil {
			return nil, err
		}
	}
	if err := lat.SetSentence(text); err != nil {
		return nil, err
	}
	if cfg.boundaryPattern != "" && len(cfg.featurePairs) > 0 {
		return nil, &ConstraintError{
			Reason: "boundary and feature constraints cannot be combined in one call"}
	}
	if cfg.boundaryPattern != "" {
		if err := lat.SetBoundaryConstraints(cfg.boundaryPattern, cfg.anyBoundary); err != nil {
			return nil, err
		}
	}
	if len(cfg.featurePairs) > 0 {
		if err := lat.SetFeatureConstraints(cfg.featurePairs); err != nil {
			return nil, err
		}
	}
	if err := lat.Parse(); err != nil {
		return nil, err
	}
	ok = true
	return lat, nil
}

// Parse analyzes text and returns the engine's formatted output.
func (m *MeCab) Parse(text string, popts ...ParseOption) (string, error) {
	lat, err := m.session(text, popts)
	if err != nil {
		return "", err
	}
	defer lat.Close()
	return lat.ToString()
}

// ParseToNodes analyzes text and returns node snapshots in lattice order.
// Beginning-of-sentence markers are filtered out; end-of-sentence markers
// are included so callers can detect result boundaries in n-best output.
func (m *MeCab) ParseToNodes(text string, popts ...ParseOption) ([]Node, error) {
	lat, err := m.session(text, popts)
	if err != nil {
		return nil, err
	}
	defer lat.Close()

	it, err := lat.Nodes()
	if err != nil {
		return nil, err
	}
	var nodes []Node
	for {
		n, more := it.Next()
		if !more {
			break
		}
		nodes = append(nodes, n)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Dicts returns the dictionary-info snapshots taken at construction.
func (m *MeCab) Dicts() []DictionaryInfo { return m.dicts }

// Version returns the engine's version string.
func (m *MeCab) Version() string { return m.version }

// Options returns the parsed construction options.
func (m *MeCab) Options() Options { return m.options }

// LibPath returns the shared-library path, when one was loaded.
func (m *MeCab) LibPath() string { return m.libpath }

func (m *MeCab) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<natto.MeCab version=%s", m.version)
	if m.libpath != "" {
		fmt.Fprintf(&b, ", libpath=%q", m.libpath)
	}
	if opts := BuildOptionsString(m.options); opts != "" {
		fmt.Fprintf(&b, ", options=%q", opts)
	}
	b.WriteString(">")
	return b.String()
}

// Close destroys the tagger and the model. It is idempotent; each handle
// is destroyed exactly once. Lattices opened from this tagger must be
// closed before the tagger is.
func (m *MeCab) Close() error {
	if m.closed {
		return nil
	}
	m.tagger.Destroy()
	m.model.Destroy()
	m.closed = true
	return nil
}
