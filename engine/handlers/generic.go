package handlers

import (
	"math"
	"regexp"
	"sort"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

const genericMaxClaims = 3

// GenericHandler is the designated fallback: it matches every query, so no
// query can go unrouted. It extracts the sentences that best overlap the
// query terms across the fused candidates.
type GenericHandler struct{}

func NewGenericHandler() *GenericHandler { return &GenericHandler{} }

func (h *GenericHandler) Name() string  { return "generic" }
func (h *GenericHandler) Priority() int { return math.MinInt32 }

func (h *GenericHandler) Matches(query string) bool { return true }

var smalltalkRe = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|thanks|thank you|good (morning|afternoon|evening)|who are you)\b[\s!.?]*$`)

func (h *GenericHandler) Synthesize(query string, candidates []types.Candidate) types.DraftAnswer {
	d := newDraft(h.Name())

	// Greetings ask for no factual content; that is an explicit
	// nothing-to-assert, not missing evidence.
	if smalltalkRe.MatchString(query) {
		d.answer.NothingToAssert = true
		return d.build("Ask a question about admissions, financial aid, or costs to get a sourced answer.")
	}

	type scored struct {
		sentence string
		doc      types.Document
		overlap  int
		order    int
	}

	picks := []scored{}
	order := 0
	for _, c := range candidates {
		for _, sentence := range splitSentences(c.Text) {
			overlap := queryTermOverlap(query, sentence)
			if overlap >= 2 {
				picks = append(picks, scored{sentence: sentence, doc: c.Document, overlap: overlap, order: order})
			}
			order++
		}
	}

	// Highest overlap first; candidate order (already fused-score ranked)
	// breaks ties so the result stays deterministic.
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].overlap != picks[j].overlap {
			return picks[i].overlap > picks[j].overlap
		}
		return picks[i].order < picks[j].order
	})

	for i, p := range picks {
		if i == genericMaxClaims {
			break
		}
		d.addExtracted(p.sentence, p.doc)
	}

	if len(d.answer.Claims) == 0 {
		return d.build("No indexed source addresses this question.")
	}
	return d.build("")
}
