package natto

import (
	"strings"
	"testing"
)

func TestParseOptionArgsForms(t *testing.T) {
	cases := []struct {
		in   string
		key  string
		want string
	}{
		{"-N2", "nbest", "2"},
		{"-N 2", "nbest", "2"},
		{"--nbest=2", "nbest", "2"},
		{"--nbest 2", "nbest", "2"},
		{"-d /usr/lib/mecab/dic", "dicdir", "/usr/lib/mecab/dic"},
		{"--dicdir=/usr/lib/mecab/dic", "dicdir", "/usr/lib/mecab/dic"},
		{"-t 0.75", "theta", "0.75"},
		{"-Oyomi", "output_format_type", "yomi"},
	}
	for _, c := range cases {
		opts, err := ParseOptionArgs(c.in)
		if err != nil {
			t.Fatalf("ParseOptionArgs(%q): %v", c.in, err)
		}
		if got := opts[c.key]; got != c.want {
			t.Errorf("ParseOptionArgs(%q)[%s] = %q, want %q", c.in, c.key, got, c.want)
		}
	}
}

func TestParseOptionArgsBooleans(t *testing.T) {
	opts, err := ParseOptionArgs("--all-morphs -p --marginal -C")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"all_morphs", "partial", "marginal", "allocate_sentence"} {
		if !opts.BoolOpt(key) {
			t.Errorf("%s not set", key)
		}
	}
}

func TestParseOptionArgsErrors(t *testing.T) {
	cases := []string{
		"--bogus",
		"-Z",
		"--nbest=abc",
		"--theta=xyz",
		"--nbest",          // missing value
		"--all-morphs=yes", // bool takes no value
		"stray",
	}
	for _, in := range cases {
		if _, err := ParseOptionArgs(in); err == nil {
			t.Errorf("ParseOptionArgs(%q) succeeded", in)
		}
	}
}

func TestParseOptionArgsNBestRange(t *testing.T) {
	for _, in := range []string{"-N0", "-N513", "--nbest=-1"} {
		_, err := ParseOptionArgs(in)
		if err == nil {
			t.Fatalf("ParseOptionArgs(%q) succeeded", in)
		}
		if !strings.Contains(err.Error(), "invalid N value") {
			t.Errorf("ParseOptionArgs(%q) error = %q, want invalid N value", in, err)
		}
	}
	if _, err := ParseOptionArgs("-N1"); err != nil {
		t.Errorf("ParseOptionArgs(-N1): %v", err)
	}
	if _, err := ParseOptionArgs("-N512"); err != nil {
		t.Errorf("ParseOptionArgs(-N512): %v", err)
	}
}

func TestBuildOptionsStringOrder(t *testing.T) {
	opts, err := ParseOptionArgs("--theta=0.75 -N2 --dicdir=/d --all-morphs")
	if err != nil {
		t.Fatal(err)
	}
	got := BuildOptionsString(opts)
	want := "--dicdir=/d --all-morphs --nbest=2 --theta=0.75"
	if got != want {
		t.Errorf("BuildOptionsString = %q, want %q", got, want)
	}
}

func TestBuildOptionsStringEmpty(t *testing.T) {
	if got := BuildOptionsString(Options{}); got != "" {
		t.Errorf("BuildOptionsString(empty) = %q", got)
	}
}

func TestOptionAccessors(t *testing.T) {
	opts, err := ParseOptionArgs("-N4 -t 0.5 --partial")
	if err != nil {
		t.Fatal(err)
	}
	if n := opts.IntOpt("nbest", 1); n != 4 {
		t.Errorf("IntOpt(nbest) = %d, want 4", n)
	}
	if n := opts.IntOpt("cost_factor", 700); n != 700 {
		t.Errorf("IntOpt default = %d, want 700", n)
	}
	if f := opts.FloatOpt("theta", 0); f != 0.5 {
		t.Errorf("FloatOpt(theta) = %v, want 0.5", f)
	}
	if !opts.BoolOpt("partial") {
		t.Error("BoolOpt(partial) = false")
	}
	if opts.BoolOpt("marginal") {
		t.Error("BoolOpt(marginal) = true")
	}
}
