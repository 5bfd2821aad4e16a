package snippet

import (
	"strings"
)

// Excerpt takes a document text and a maxLen as input, and returns a short
// excerpt of at most maxLen characters that never cuts a word in half,
// suitable for a citation snippet.
func Excerpt(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	var excerpt strings.Builder

	for _, word := range strings.Fields(text) {
		// +1 for the joining space, +1 for the ellipsis rune appended below
		if excerpt.Len() > 0 && excerpt.Len()+len(word)+2 > maxLen {
			break
		}
		if excerpt.Len() == 0 && len(word) > maxLen {
			return word[:maxLen]
		}

		if excerpt.Len() > 0 {
			excerpt.WriteString(" ")
		}
		excerpt.WriteString(word)
	}

	return excerpt.String() + "…"
}
