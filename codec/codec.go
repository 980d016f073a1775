// Package codec converts text between Go strings (UTF-8) and the byte
// encoding a MeCab dictionary was compiled with. Every string crossing the
// native boundary must pass through one Codec; bypassing it is how mojibake
// happens.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// EncodingError reports a failed conversion at the charset boundary.
type EncodingError struct {
	Charset string
	Op      string // "encode" or "decode"
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("codec: %s failed for charset %s: %v", e.Op, e.Charset, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Codec encodes and decodes strings for a single charset. It is stateless
// and safe for concurrent use.
type Codec struct {
	name string
	enc  encoding.Encoding // nil means UTF-8 passthrough
}

// New returns a Codec for the given charset name. Names are matched the way
// MeCab dictionaries report them: utf8, utf-8, shift-jis, shift_jis, sjis,
// cp932, euc-jp, eucjp, iso-2022-jp. Unknown charsets are an error.
func New(charset string) (*Codec, error) {
	name := normalize(charset)
	switch name {
	case "utf8", "utf-8":
		return &Codec{name: "utf-8"}, nil
	case "utf16", "utf-16":
		e := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		return &Codec{name: "utf-16", enc: e}, nil
	case "shift-jis", "shift_jis", "sjis", "cp932", "windows-31j":
		return &Codec{name: "shift_jis", enc: japanese.ShiftJIS}, nil
	case "euc-jp", "eucjp":
		return &Codec{name: "euc-jp", enc: japanese.EUCJP}, nil
	case "iso-2022-jp", "iso2022jp":
		return &Codec{name: "iso-2022-jp", enc: japanese.ISO2022JP}, nil
	}
	return nil, &EncodingError{Charset: charset, Op: "new",
		Err: fmt.Errorf("unsupported charset %q", charset)}
}

func normalize(charset string) string {
	return strings.ToLower(strings.TrimSpace(charset))
}

// Name returns the canonical charset name of this codec.
func (c *Codec) Name() string { return c.name }

// Encode converts s to the codec's charset. Characters not representable in
// the charset yield an EncodingError, never a silent substitution.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		if !utf8.ValidString(s) {
			return nil, &EncodingError{Charset: c.name, Op: "encode",
				Err: fmt.Errorf("string contains invalid UTF-8")}
		}
		return []byte(s), nil
	}
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, &EncodingError{Charset: c.name, Op: "encode", Err: err}
	}
	return b, nil
}

// Decode converts native bytes to a Go string. Invalid byte sequences for
// the charset yield an EncodingError.
//
// The x/text decoders substitute U+FFFD for invalid input instead of
// returning an error, so a replacement rune in the output that the input
// could not legitimately have produced is treated as a decode failure.
func (c *Codec) Decode(b []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(b) {
			return "", &EncodingError{Charset: c.name, Op: "decode",
				Err: fmt.Errorf("invalid UTF-8 byte sequence")}
		}
		return string(b), nil
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &EncodingError{Charset: c.name, Op: "decode", Err: err}
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) && !decodesToReplacement(c.enc, b) {
		return "", &EncodingError{Charset: c.name, Op: "decode",
			Err: fmt.Errorf("invalid byte sequence for charset %s", c.name)}
	}
	return s, nil
}

// ByteLen returns the encoded length of s under the codec's charset. This is
// the unit all lattice constraint offsets are expressed in.
func (c *Codec) ByteLen(s string) (int, error) {
	if c.enc == nil {
		if !utf8.ValidString(s) {
			return 0, &EncodingError{Charset: c.name, Op: "encode",
				Err: fmt.Errorf("string contains invalid UTF-8")}
		}
		return len(s), nil
	}
	b, err := c.Encode(s)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// decodesToReplacement reports whether the input itself contains an encoding
// of U+FFFD, in which case a replacement rune in the output is legitimate.
func decodesToReplacement(enc encoding.Encoding, b []byte) bool {
	repl, err := enc.NewEncoder().Bytes([]byte(string(utf8.RuneError)))
	if err != nil || len(repl) == 0 {
		return false
	}
	return strings.Contains(string(b), string(repl))
}
