package handlers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
	dollarRe    = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// splitSentences cuts candidate text into trimmed sentences. Extraction
// works sentence by sentence so a claim stays one atomic assertion.
func splitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimRight(p, ".!?"))
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// containsAny reports whether the lowercased text contains any keyword.
func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// parseDollars converts a captured dollar figure like "85,000" to a float.
func parseDollars(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dollarAmounts parses every $-prefixed figure in a sentence.
func dollarAmounts(text string) []float64 {
	matches := dollarRe.FindAllStringSubmatch(text, -1)
	amounts := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, ok := parseDollars(m[1]); ok {
			amounts = append(amounts, v)
		}
	}
	return amounts
}

// firstDollarAmount returns the first $-figure in a sentence, if any.
func firstDollarAmount(text string) (float64, bool) {
	amounts := dollarAmounts(text)
	if len(amounts) == 0 {
		return 0, false
	}
	return amounts[0], true
}

// queryTermOverlap counts how many distinct query terms (length > 2)
// appear in the sentence.
func queryTermOverlap(query, sentence string) int {
	lower := strings.ToLower(sentence)
	seen := map[string]bool{}
	overlap := 0
	for _, term := range strings.Fields(strings.ToLower(query)) {
		term = strings.Trim(term, ".,;:!?()\"'")
		if len(term) <= 2 || seen[term] {
			continue
		}
		seen[term] = true
		if strings.Contains(lower, term) {
			overlap++
		}
	}
	return overlap
}
