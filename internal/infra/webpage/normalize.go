package webpage

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	htmlEntity    = regexp.MustCompile(`(?i)&[a-z]+;`)
)

// Normalize collapses whitespace, drops leftover named entities and folds Unicode
// space variants into a single ASCII space.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = htmlEntity.ReplaceAllString(text, " ")
	text = strings.Map(foldSpace, text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func foldSpace(r rune) rune {
	switch {
	case r == '\u00a0', r == '\u1680', r == '\u180e',
		r >= '\u2000' && r <= '\u200b',
		r == '\u2028', r == '\u2029', r == '\u202f', r == '\u205f',
		r == '\u3000', r == '\ufeff', r == '\v', r == '\u0085':
		return ' '
	}
	return r
}
