// Package gate enforces the cite-or-abstain policy. It is a pure function
// of the draft: the expected failure path (insufficient evidence) flows
// through ordinary data, never through errors.
package gate

import (
	"fmt"
	"strings"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// Gate computes citation coverage and converts a draft into the final
// answer skeleton. Answered drafts still need prose formatting; abstained
// answers are complete, with locally produced text that never passes
// through the external generator.
type Gate struct {
	threshold float64
}

func New(threshold float64) *Gate {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.9
	}
	return &Gate{threshold: threshold}
}

func (g *Gate) Threshold() float64 { return g.threshold }

// Coverage is the fraction of claims carrying at least one citation. Zero
// claims count as full coverage only when the handler explicitly signaled
// nothing-to-assert; zero claims from insufficient evidence is zero
// coverage.
func Coverage(draft types.DraftAnswer) float64 {
	if len(draft.Claims) == 0 {
		if draft.NothingToAssert {
			return 1.0
		}
		return 0.0
	}
	cited := 0
	for _, c := range draft.Claims {
		if c.Cited() {
			cited++
		}
	}
	return float64(cited) / float64(len(draft.Claims))
}

// Evaluate applies the coverage threshold. The returned answer's Abstained
// flag is the tag callers branch on.
func (g *Gate) Evaluate(draft types.DraftAnswer) types.Answer {
	coverage := Coverage(draft)

	if coverage < g.threshold {
		return types.Answer{
			Text:        abstentionText(draft),
			Citations:   []types.Citation{},
			Confidence:  coverage,
			Abstained:   true,
			HandlerUsed: draft.HandlerUsed,
		}
	}

	return types.Answer{
		Citations:   draft.Citations,
		Confidence:  coverage,
		Abstained:   false,
		HandlerUsed: draft.HandlerUsed,
	}
}

func abstentionText(draft types.DraftAnswer) string {
	var b strings.Builder
	b.WriteString("I can't answer this with enough sourced evidence, so I'd rather not guess.")
	if draft.Note != "" {
		b.WriteString(" ")
		b.WriteString(draft.Note)
	}
	if len(draft.Claims) > 0 {
		fmt.Fprintf(&b, " Only %d of %d statements I could assemble were backed by an indexed source.", citedCount(draft), len(draft.Claims))
	}
	b.WriteString(" Try rephrasing with the program or school name, or verify directly with the institution's official pages.")
	return b.String()
}

func citedCount(draft types.DraftAnswer) int {
	n := 0
	for _, c := range draft.Claims {
		if c.Cited() {
			n++
		}
	}
	return n
}
