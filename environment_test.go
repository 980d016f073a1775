package natto

import (
	"path/filepath"
	"testing"
)

func TestDiscoverEnvHonorsVariables(t *testing.T) {
	t.Setenv(EnvMeCabPath, "/opt/mecab/lib/libmecab.so")
	t.Setenv(EnvMeCabCharset, "shift-jis")

	env, err := DiscoverEnv()
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(env.LibPath) {
		t.Errorf("LibPath %q is not absolute", env.LibPath)
	}
	if env.LibPath != "/opt/mecab/lib/libmecab.so" {
		t.Errorf("LibPath = %q", env.LibPath)
	}
	if env.Charset != "shift-jis" {
		t.Errorf("Charset = %q, want shift-jis", env.Charset)
	}
}

func TestDiscoverEnvPathNotChecked(t *testing.T) {
	// MECAB_PATH is taken on faith; loading it is where a bad path fails.
	t.Setenv(EnvMeCabPath, "/no/such/libmecab.so")
	t.Setenv(EnvMeCabCharset, "utf8")

	env, err := DiscoverEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env.LibPath != "/no/such/libmecab.so" {
		t.Errorf("LibPath = %q", env.LibPath)
	}
}

func TestDiscoverCharsetEnvOverride(t *testing.T) {
	t.Setenv(EnvMeCabCharset, "euc-jp")
	if got := discoverCharset(); got != "euc-jp" {
		t.Errorf("discoverCharset = %q, want euc-jp", got)
	}
}
