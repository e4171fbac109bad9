package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims input, folds runs of whitespace into one space,
// drops control characters and keeps at most maxLen bytes without
// splitting a UTF-8 sequence. maxLen <= 0 means no limit.
func SanitizeString(input string, maxLen int) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(input) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space {
			if maxLen > 0 && b.Len()+1 > maxLen {
				break
			}
			b.WriteByte(' ')
			space = false
		}
		if maxLen > 0 && b.Len()+utf8.RuneLen(r) > maxLen {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
