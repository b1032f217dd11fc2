package gml

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// GML strings are byte strings in the Windows ANSI code page. Text crossing
// into Go (logs, stdout, YAML) is converted at that boundary.

// DecodeANSI converts an ANSI byte string to UTF-8. Bytes that cannot be
// decoded are passed through unchanged.
func DecodeANSI(s string) string {
	out, _, err := transform.String(charmap.Windows1252.NewDecoder(), s)
	if err != nil {
		return s
	}
	return out
}

// EncodeANSI converts UTF-8 text to an ANSI byte string. Runes outside the
// code page become '?'.
func EncodeANSI(s string) string {
	enc := charmap.Windows1252.NewEncoder()
	out, _, err := transform.String(enc, s)
	if err == nil {
		return out
	}
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			buf = append(buf, b)
		} else {
			buf = append(buf, '?')
		}
	}
	return string(buf)
}
