package xml

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// declRe extracts encoding="..." from a raw XML declaration. It only needs
// to see the first ~200 bytes of the document, well before the lookahead
// buffer in reader.go ever has to refill.
var declRe = regexp.MustCompile(`encoding\s*=\s*["']([^"']+)["']`)

// DetectEncoding sniffs a BOM first (UTF-8, UTF-16LE, UTF-16BE); absent a
// BOM it peeks for an XML declaration's encoding= label. It returns a
// reader ready for NewCharacterStream and the resolved label, never
// consuming more of r than the sniff needed (spec.md §4.A, §6).
//
// Replaces the teacher's hand-rolled windows1252Table/latin1Reader
// (xml/util.go in the teacher) with golang.org/x/text's encoding tables --
// the same concern, backed by a maintained library instead of a 256-entry
// array.
func DetectEncoding(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, 4096)
	bom, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, "", err
	}

	if enc, n, label, ok := sniffBOM(bom); ok {
		if _, err := br.Discard(n); err != nil {
			return nil, "", err
		}
		return transform.NewReader(br, enc.NewDecoder()), label, nil
	}

	// No BOM: default to UTF-8 unless the XML declaration says otherwise.
	head, _ := br.Peek(512)
	label := "UTF-8"
	if m := declRe.FindSubmatch(head); m != nil {
		label = string(m[1])
	}

	enc, canonical, err := lookupEncoding(label)
	if err != nil {
		return nil, "", err
	}
	if enc == nil {
		return br, canonical, nil
	}
	return transform.NewReader(br, enc.NewDecoder()), canonical, nil
}

func sniffBOM(head []byte) (enc encoding.Encoding, consumed int, label string, ok bool) {
	switch {
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		return encoding.Nop, 3, "UTF-8", true
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), 2, "UTF-16LE", true
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), 2, "UTF-16BE", true
	default:
		return nil, 0, "", false
	}
}

// lookupEncoding resolves the small set of charset labels spec.md needs:
// UTF-8, UTF-16LE/BE, ISO-8859-1, and Windows-1252. Anything else is a
// ResourceError ("unsupported protocol/charset"), never a silent fallback.
func lookupEncoding(label string) (encoding.Encoding, string, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "":
		return nil, "UTF-8", nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "UTF-16LE", nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "UTF-16BE", nil
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "UTF-16", nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, "ISO-8859-1", nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, "Windows-1252", nil
	default:
		return nil, "", NewResourceError("unsupported charset: %s", label)
	}
}

// isInCharacterRange validates r against the active XML version's Char
// production (spec.md §4.A): 1.0 excludes the C0 controls other than
// tab/LF/CR; 1.1 additionally admits #x1-#x1F (still excluding #x0).
func isInCharacterRange(r rune, version string) bool {
	if version == "1.1" {
		if r >= 0x1 && r <= 0x1F && r != 0xD && r != 0xA {
			return true
		}
	}
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}

func invalidCodePointError(r rune) *Error {
	return wellFormednessError("invalid character U+%04X", r)
}
