package natto

import (
	"fmt"
	"strconv"
	"strings"
)

// The MeCab option grammar: short and long forms of every option the
// tagger constructor understands, in the order the flag string is built.
// See the mecab help for details.
type optionKind int

const (
	optString optionKind = iota
	optInt
	optFloat
	optBool
)

type optionSpec struct {
	short string
	long  string // also the map key, with '-' for '_'
	kind  optionKind
}

var supportedOpts = []optionSpec{
	{"-d", "dicdir", optString},
	{"-u", "userdic", optString},
	{"-l", "lattice-level", optInt}, // DEPRECATED
	{"-O", "output-format-type", optString},
	{"-a", "all-morphs", optBool},
	{"-N", "nbest", optInt},
	{"-p", "partial", optBool},
	{"-m", "marginal", optBool},
	{"-M", "max-grouping-size", optInt},
	{"-F", "node-format", optString},
	{"-U", "unk-format", optString},
	{"-B", "bos-format", optString},
	{"-E", "eos-format", optString},
	{"-S", "eon-format", optString},
	{"-x", "unk-feature", optString},
	{"-b", "input-buffer-size", optInt},
	{"-C", "allocate-sentence", optBool},
	{"-t", "theta", optFloat},
	{"-c", "cost-factor", optInt},
}

const nbestMax = 512

const warnLatticeLevel = "lattice-level is DEPRECATED, please use marginal or nbest"

// Options holds parsed MeCab options keyed by the snake-cased long name.
// Boolean options are present with value "true" when set.
type Options map[string]string

func specByShort(s string) *optionSpec {
	for i := range supportedOpts {
		if supportedOpts[i].short == s {
			return &supportedOpts[i]
		}
	}
	return nil
}

func specByLong(s string) *optionSpec {
	for i := range supportedOpts {
		if supportedOpts[i].long == s {
			return &supportedOpts[i]
		}
	}
	return nil
}

func (s *optionSpec) key() string {
	return strings.ReplaceAll(s.long, "-", "_")
}

// ParseOptionArgs parses a MeCab option string in short or long form
// ("-N2", "-N 2", "--nbest=2", "--nbest 2") into Options. Unknown options
// and malformed values are errors; an N-best value outside 1..512 is an
// error.
func ParseOptionArgs(options string) (Options, error) {
	opts := Options{}
	args := strings.Fields(options)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var spec *optionSpec
		var val string
		var hasVal bool

		switch {
		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name, val, hasVal = name[:eq], name[eq+1:], true
			}
			spec = specByLong(name)
			if spec == nil {
				return nil, fmt.Errorf("unrecognized option %q", arg)
			}
		case strings.HasPrefix(arg, "-") && len(arg) >= 2:
			spec = specByShort(arg[:2])
			if spec == nil {
				return nil, fmt.Errorf("unrecognized option %q", arg)
			}
			if len(arg) > 2 {
				val, hasVal = arg[2:], true // attached value, e.g. -N2
			}
		default:
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}

		if spec.kind == optBool {
			if hasVal {
				return nil, fmt.Errorf("option --%s takes no value", spec.long)
			}
			opts[spec.key()] = "true"
			continue
		}
		if !hasVal {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("option --%s requires a value", spec.long)
			}
			i++
			val = args[i]
		}
		switch spec.kind {
		case optInt:
			if _, err := strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("option --%s: invalid integer %q", spec.long, val)
			}
		case optFloat:
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				return nil, fmt.Errorf("option --%s: invalid number %q", spec.long, val)
			}
		}
		opts[spec.key()] = val
	}

	if v, ok := opts["nbest"]; ok {
		n, _ := strconv.Atoi(v)
		if n < 1 || n > nbestMax {
			return nil, fmt.Errorf("invalid N value")
		}
	}
	if _, ok := opts["lattice_level"]; ok {
		tracer().Infof("WARNING: %s", warnLatticeLevel)
	}
	return opts, nil
}

// BuildOptionsString concatenates the options in long form, in the fixed
// table order, the way the native constructor expects them.
func BuildOptionsString(opts Options) string {
	var out []string
	for i := range supportedOpts {
		spec := &supportedOpts[i]
		v, ok := opts[spec.key()]
		if !ok {
			continue
		}
		if spec.kind == optBool {
			if v == "true" {
				out = append(out, "--"+spec.long)
			}
			continue
		}
		out = append(out, fmt.Sprintf("--%s=%s", spec.long, v))
	}
	return strings.Join(out, " ")
}

// IntOpt returns the integer option named key, or def when unset.
func (o Options) IntOpt(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// FloatOpt returns the float option named key, or def when unset.
func (o Options) FloatOpt(key string, def float64) float64 {
	v, ok := o[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// BoolOpt reports whether the boolean option named key is set.
func (o Options) BoolOpt(key string) bool {
	return o[key] == "true"
}
