package natto

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables honored before any discovery subprocess runs.
const (
	EnvMeCabPath    = "MECAB_PATH"
	EnvMeCabCharset = "MECAB_CHARSET"
)

// Env is the resolved MeCab environment: where the shared library lives
// and which charset its system dictionary uses.
type Env struct {
	LibPath string
	Charset string
}

// DiscoverEnv resolves the MeCab environment. The charset comes from
// MECAB_CHARSET, else from `mecab -D` output, else from a per-OS default
// (shift-jis on Windows, utf8 on macOS, euc-jp elsewhere, per the MeCab
// documentation). The library path comes from MECAB_PATH, else from
// `mecab-config --libs-only-L`.
func DiscoverEnv() (Env, error) {
	charset := discoverCharset()
	libpath, err := discoverLibPath()
	if err != nil {
		return Env{}, err
	}
	tracer().Debugf("resolved MeCab environment: libpath=%s charset=%s", libpath, charset)
	return Env{LibPath: libpath, Charset: charset}, nil
}

func discoverCharset() string {
	if cset := os.Getenv(EnvMeCabCharset); cset != "" {
		return cset
	}
	out, err := exec.Command("mecab", "-D").Output()
	if err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if !strings.HasPrefix(line, "charset") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				return strings.ToLower(fields[1])
			}
		}
	}
	var cset string
	switch runtime.GOOS {
	case "windows":
		cset = "shift-jis"
	case "darwin":
		cset = "utf8"
	default:
		cset = "euc-jp"
	}
	tracer().Debugf("defaulting MeCab charset to %s", cset)
	return cset
}

func discoverLibPath() (string, error) {
	if libp := os.Getenv(EnvMeCabPath); libp != "" {
		abs, err := filepath.Abs(libp)
		if err != nil {
			return libp, nil
		}
		return abs, nil
	}

	lib := "libmecab.so"
	switch runtime.GOOS {
	case "darwin":
		lib = "libmecab.dylib"
	case "windows":
		lib = "libmecab.dll"
	}

	out, err := exec.Command("mecab-config", "--libs-only-L").Output()
	if err != nil {
		return "", fmt.Errorf("%s could not be found, please use %s: %w", lib, EnvMeCabPath, err)
	}
	libdir := strings.TrimSpace(string(out))
	libp := filepath.Join(libdir, lib)
	if _, err := os.Stat(libp); err != nil {
		return "", fmt.Errorf("mecab-config could not locate %s: %w", libp, err)
	}
	return filepath.Abs(libp)
}
