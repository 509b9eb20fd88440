package workspace

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Decoder turns a source file's raw bytes into text. Classic ASP sites
// predate UTF-8 adoption widely enough that a single configurable
// alternative encoding is worth supporting alongside the UTF-8 default.
type Decoder struct {
	enc *encoding.Encoding
}

// UTF8Decoder decodes as UTF-8, replacing invalid sequences with the
// Unicode replacement character rather than failing the scan.
func UTF8Decoder() Decoder {
	return Decoder{}
}

// ShiftJISDecoder decodes as Shift_JIS/CP932, the most common alternative
// encoding found in legacy Japanese Classic ASP codebases.
func ShiftJISDecoder() Decoder {
	enc := japanese.ShiftJIS
	return Decoder{enc: &enc}
}

// NewDecoder resolves a configuration name ("utf-8", "shift_jis", "cp932";
// case-insensitive) to a Decoder, defaulting to UTF-8 for an empty or
// unrecognized name.
func NewDecoder(name string) Decoder {
	switch normalizeEncodingName(name) {
	case "shiftjis", "cp932", "sjis":
		return ShiftJISDecoder()
	default:
		return UTF8Decoder()
	}
}

func normalizeEncodingName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch c {
		case '-', '_', ' ':
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// Decode converts raw into text. When the configured encoding fails to
// decode a byte sequence, the standard Go UTF-8-with-replacement behavior
// applies: malformed runs become U+FFFD rather than aborting the scan.
func (d Decoder) Decode(raw []byte) string {
	if d.enc == nil {
		return decodeUTF8Lossy(raw)
	}
	out, _, err := transform.Bytes((*d.enc).NewDecoder(), raw)
	if err != nil {
		return decodeUTF8Lossy(raw)
	}
	return string(out)
}

func decodeUTF8Lossy(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}
