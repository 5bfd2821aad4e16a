package handlers

import (
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/pkg/snippet"
)

const citationSnippetLen = 160

// Handler is the capability a domain expert exposes to the router: a pure
// match predicate over the query text and a synthesis step over the fused
// candidates. Handlers are stateless across queries; any working state
// lives in the DraftAnswer under construction.
type Handler interface {
	Name() string
	// Priority orders routing; higher wins, ties break by registration
	// order.
	Priority() int
	// Matches must be a pure function of the query text. No I/O.
	Matches(query string) bool
	// Synthesize inspects only the candidates it was given; it never
	// queries an index directly.
	Synthesize(query string, candidates []types.Candidate) types.DraftAnswer
}

// draft accumulates claims and the deduplicated citation registry while a
// handler synthesizes.
type draft struct {
	answer types.DraftAnswer
	cited  map[string]bool
}

func newDraft(handlerName string) *draft {
	return &draft{
		answer: types.DraftAnswer{
			HandlerUsed: handlerName,
			Claims:      []types.Claim{},
			Citations:   []types.Citation{},
		},
		cited: map[string]bool{},
	}
}

// addExtracted records a claim copied from a candidate's text, cited with
// that candidate's document.
func (d *draft) addExtracted(text string, doc types.Document) {
	d.answer.Claims = append(d.answer.Claims, types.Claim{
		Text:        text,
		CitationIDs: []string{doc.ID},
	})
	d.register(doc)
}

// addComputed records a calculator-produced claim citing the union of the
// citation ids of the extracted claims that fed it.
func (d *draft) addComputed(text string, inputs []types.Claim) {
	seen := map[string]bool{}
	ids := []string{}
	for _, in := range inputs {
		for _, id := range in.CitationIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	d.answer.Claims = append(d.answer.Claims, types.Claim{
		Text:        text,
		CitationIDs: ids,
		Computed:    true,
	})
}

func (d *draft) register(doc types.Document) {
	if d.cited[doc.ID] {
		return
	}
	d.cited[doc.ID] = true
	d.answer.Citations = append(d.answer.Citations, types.Citation{
		ID:        doc.ID,
		SourceURL: doc.SourceURL,
		Title:     doc.Title,
		Snippet:   snippet.Excerpt(doc.Text, citationSnippetLen),
	})
}

func (d *draft) build(note string) types.DraftAnswer {
	d.answer.Note = note
	return d.answer
}
