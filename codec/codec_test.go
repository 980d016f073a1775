package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewNormalizesCharsetNames(t *testing.T) {
	cases := []struct {
		charset string
		want    string
	}{
		{"utf8", "utf-8"},
		{"UTF-8", "utf-8"},
		{" utf-8 ", "utf-8"},
		{"shift-jis", "shift_jis"},
		{"Shift_JIS", "shift_jis"},
		{"sjis", "shift_jis"},
		{"cp932", "shift_jis"},
		{"windows-31j", "shift_jis"},
		{"euc-jp", "euc-jp"},
		{"EUCJP", "euc-jp"},
		{"iso-2022-jp", "iso-2022-jp"},
		{"utf-16", "utf-16"},
	}
	for _, c := range cases {
		cdc, err := New(c.charset)
		if err != nil {
			t.Fatalf("New(%q): %v", c.charset, err)
		}
		if cdc.Name() != c.want {
			t.Errorf("New(%q).Name() = %q, want %q", c.charset, cdc.Name(), c.want)
		}
	}
}

func TestNewRejectsUnknownCharset(t *testing.T) {
	_, err := New("klingon")
	if err == nil {
		t.Fatal("New(klingon) succeeded")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *EncodingError", err)
	}
}

func TestRoundTrip(t *testing.T) {
	const text = "にわにはにわにわとりがいる。"
	for _, charset := range []string{"utf8", "shift-jis", "euc-jp"} {
		cdc, err := New(charset)
		if err != nil {
			t.Fatalf("New(%q): %v", charset, err)
		}
		b, err := cdc.Encode(text)
		if err != nil {
			t.Fatalf("%s: Encode: %v", charset, err)
		}
		got, err := cdc.Decode(b)
		if err != nil {
			t.Fatalf("%s: Decode: %v", charset, err)
		}
		if got != text {
			t.Errorf("%s: round trip = %q, want %q", charset, got, text)
		}
	}
}

func TestEncodeUTF8Passthrough(t *testing.T) {
	cdc, _ := New("utf8")
	b, err := cdc.Encode("すもも")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("すもも")) {
		t.Errorf("Encode = % x, want passthrough", b)
	}
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	cdc, _ := New("utf8")
	if _, err := cdc.Encode(string([]byte{0xff, 0xfe})); err == nil {
		t.Error("Encode accepted invalid UTF-8")
	}
}

func TestEncodeRejectsUnrepresentableRune(t *testing.T) {
	// The snowman has no EUC-JP encoding.
	cdc, _ := New("euc-jp")
	_, err := cdc.Encode("☃")
	if err == nil {
		t.Fatal("Encode silently substituted an unrepresentable rune")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *EncodingError", err)
	}
	if ee.Op != "encode" {
		t.Errorf("Op = %q, want encode", ee.Op)
	}
}

func TestDecodeRejectsInvalidBytes(t *testing.T) {
	cases := []struct {
		charset string
		input   []byte
	}{
		{"utf8", []byte{0xff, 0xfe, 0xfd}},
		{"euc-jp", []byte{0x8f, 0x01}},
		{"shift-jis", []byte{0x81, 0x01, 0x82}},
	}
	for _, c := range cases {
		cdc, _ := New(c.charset)
		if _, err := cdc.Decode(c.input); err == nil {
			t.Errorf("%s: Decode(% x) succeeded", c.charset, c.input)
		}
	}
}

func TestByteLenTracksCharset(t *testing.T) {
	// "にわ" is 6 bytes in UTF-8 and 4 bytes in both Shift_JIS and EUC-JP.
	const text = "にわ"
	cases := []struct {
		charset string
		want    int
	}{
		{"utf8", 6},
		{"shift-jis", 4},
		{"euc-jp", 4},
	}
	for _, c := range cases {
		cdc, _ := New(c.charset)
		n, err := cdc.ByteLen(text)
		if err != nil {
			t.Fatalf("%s: ByteLen: %v", c.charset, err)
		}
		if n != c.want {
			t.Errorf("%s: ByteLen(%q) = %d, want %d", c.charset, text, n, c.want)
		}
	}
}

func TestByteLenMatchesEncode(t *testing.T) {
	cdc, _ := New("shift-jis")
	const text = "すもももももももものうち"
	b, err := cdc.Encode(text)
	if err != nil {
		t.Fatal(err)
	}
	n, err := cdc.ByteLen(text)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(b) {
		t.Errorf("ByteLen = %d, len(Encode) = %d", n, len(b))
	}
}
