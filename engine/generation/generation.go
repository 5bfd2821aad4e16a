// Package generation wraps the external text formatter behind a narrow
// adapter so the rest of the pipeline never depends on the network. The
// formatter rephrases a structured draft into prose; it is never allowed
// to alter facts or citations, and the engine verifies that itself.
package generation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// ErrRejected is returned when the formatter's output failed citation
// verification and must not be used.
var ErrRejected = errors.New("formatter output rejected")

// Formatter turns a cited draft into prose. Implementations must keep
// every citation marker intact and add no factual content.
type Formatter interface {
	Format(ctx context.Context, draft types.DraftAnswer) (string, error)
}

var markerRe = regexp.MustCompile(`\[([A-Za-z0-9_.:-]+)\]`)

// VerifyMarkers checks the formatter's prose against the draft's citation
// registry: every marker must resolve to a registered citation, and prose
// with no markers at all while the draft has claims is a formatting
// failure (the provenance was dropped).
func VerifyMarkers(prose string, draft types.DraftAnswer) error {
	known := make(map[string]bool, len(draft.Citations))
	for _, c := range draft.Citations {
		known[c.ID] = true
	}

	markers := markerRe.FindAllStringSubmatch(prose, -1)
	if len(markers) == 0 && len(draft.Claims) > 0 {
		return fmt.Errorf("%w: no citation markers in formatted prose", ErrRejected)
	}
	for _, m := range markers {
		if !known[m[1]] {
			return fmt.Errorf("%w: unknown citation marker [%s]", ErrRejected, m[1])
		}
	}
	return nil
}

// RenderStructured is the formatter-free rendering of a draft: claims with
// inline markers plus the source list. It is both the fallback when the
// external formatter fails and the ground truth the formatted prose is
// compared against.
func RenderStructured(draft types.DraftAnswer) string {
	var b strings.Builder

	for _, claim := range draft.Claims {
		b.WriteString(claim.Text)
		for _, id := range claim.CitationIDs {
			fmt.Fprintf(&b, " [%s]", id)
		}
		b.WriteString("\n")
	}
	if draft.Note != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(draft.Note)
		b.WriteString("\n")
	}
	if len(draft.Citations) > 0 {
		b.WriteString("\nSources:\n")
		for _, c := range draft.Citations {
			fmt.Fprintf(&b, "[%s] %s — %s\n", c.ID, c.Title, c.SourceURL)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
