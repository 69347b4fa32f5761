/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: names.go
Description: XML name handling for tree tags. JSON keys and CSV headers can be
arbitrary strings; these helpers turn them into usable element names.
*/

package tree

import (
	"strings"
	"unicode"
)

// SanitizeTag converts s into a valid XML element name. Spaces become underscores,
// other disallowed characters become underscores, and names that cannot start
// an element get a leading underscore.
func SanitizeTag(s string) string {
	if s == "" {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(s) + 1)
	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			b.WriteByte('_')
			if isNameChar(r) {
				b.WriteRune(r)
			}
			continue
		}
		if isNameChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// IsValidTag reports whether s can be used as an element name unchanged
func IsValidTag(s string) bool {
	return s != "" && SanitizeTag(s) == s
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isNameChar(r rune) bool {
	if isNameStart(r) {
		return true
	}
	switch r {
	case '-', '.', '\u00b7', '\u0387', '\u203f', '\u2040':
		return true
	}
	return unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}
