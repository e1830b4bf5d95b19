package table

import (
	"strings"
	"unicode"
)

// NormalizeKey derives a camel-case field key from header text.
//
// The first character of the text is lower-cased if it is a word character;
// every other word-initial character and every upper-case ASCII letter is
// upper-cased; then all whitespace is removed. Only first letters are
// touched, so "First Name" becomes "firstName" and "ID" becomes "iD".
func NormalizeKey(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	runes := []rune(header)
	for i, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		switch {
		case i == 0 && isWord(r):
			b.WriteRune(unicode.ToLower(r))
		case isWord(r) && !isWord(runes[i-1]):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isWord matches ASCII letters, digits and underscore.
func isWord(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
