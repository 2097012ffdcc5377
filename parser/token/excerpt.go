package token

import (
	"strings"
	"unicode/utf8"
)

// excerptWidth is the number of runes shown on either side of a location.
const excerptWidth = 30

// Excerpt returns the source line containing loc followed by a second line
// with a caret under loc's column.  Long lines are clipped around the column.
// Excerpt returns an empty string if loc does not fall inside src.
func Excerpt(src string, loc *Location) string {
	if loc == nil || loc.Pos < 0 || loc.Pos > len(src) {
		return ""
	}
	lineStart := strings.LastIndexByte(src[:loc.Pos], '\n') + 1
	lineEnd := strings.IndexByte(src[loc.Pos:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += loc.Pos
	}
	line := []rune(src[lineStart:lineEnd])
	col := utf8.RuneCountInString(src[lineStart:loc.Pos])

	lo, hi := 0, len(line)
	if col-lo > excerptWidth {
		lo = col - excerptWidth
	}
	if hi-col > excerptWidth {
		hi = col + excerptWidth
	}
	var buf, caret strings.Builder
	if lo > 0 {
		buf.WriteString("...")
		caret.WriteString("   ")
	}
	for _, c := range line[lo:col] {
		if c == '\t' {
			caret.WriteRune('\t')
		} else {
			caret.WriteRune(' ')
		}
	}
	caret.WriteRune('^')
	buf.WriteString(string(line[lo:hi]))
	if hi < len(line) {
		buf.WriteString("...")
	}
	buf.WriteRune('\n')
	buf.WriteString(caret.String())
	return buf.String()
}
