package engine

import (
	"strings"
	"unicode"

	"github.com/stoewer/go-strcase"
)

// kebabCase converts preset slugs and side keys the way block editor does:
// words break on case changes, on letter/digit transitions and on any
// non-alphanumeric character, so "h1Large" becomes "h-1-large". Ordinals
// ("21st", "4TH") stay in one word and apostrophes are dropped.
func kebabCase(s string) string {
	rs := []rune(strings.ReplaceAll(s, "'", ""))

	var b strings.Builder
	b.Grow(len(rs) + 4)
	for i, r := range rs {
		if i > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLetter(prev) && unicode.IsDigit(r):
				b.WriteByte('-')
			case unicode.IsDigit(prev) && unicode.IsLetter(r) && !isOrdinal(rs, i):
				b.WriteByte('-')
			}
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			r = '-'
		}
		b.WriteRune(r)
	}
	return strings.Trim(strcase.KebabCase(b.String()), "-")
}

// isOrdinal reports whether letters starting at i complete an ordinal number
// with the digit right before them.
func isOrdinal(rs []rune, i int) bool {
	if i+2 > len(rs) {
		return false
	}
	var suffix string
	switch rs[i-1] {
	case '1':
		suffix = "st"
	case '2':
		suffix = "nd"
	case '3':
		suffix = "rd"
	default:
		suffix = "th"
	}
	got := string(rs[i : i+2])
	var next rune
	if i+2 < len(rs) {
		next = rs[i+2]
	}
	switch got {
	case suffix:
		return !unicode.IsLower(next) && !unicode.IsDigit(next)
	case strings.ToUpper(suffix):
		return !unicode.IsUpper(next) && !unicode.IsDigit(next)
	}
	return false
}
