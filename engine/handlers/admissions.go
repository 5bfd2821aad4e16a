package handlers

import (
	"regexp"
	"strings"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// AdmissionsHandler answers questions about admission requirements: GPA,
// test scores, acceptance rates, and application deadlines.
type AdmissionsHandler struct{}

func NewAdmissionsHandler() *AdmissionsHandler { return &AdmissionsHandler{} }

func (h *AdmissionsHandler) Name() string  { return "admissions" }
func (h *AdmissionsHandler) Priority() int { return 30 }

var admissionsQueryRe = regexp.MustCompile(`(?i)\b(gpa|grade point|sat\b|act\b|test scores?|admissions?|admitted?|acceptance|apply|application|deadline|requirements?|prerequisites?)`)

func (h *AdmissionsHandler) Matches(query string) bool {
	return admissionsQueryRe.MatchString(query)
}

// admissionAspects maps what the query asks about to the sentence keywords
// that address it. A sentence only becomes a claim when it speaks to an
// aspect the query actually raised; otherwise a GPA fact would satisfy an
// acceptance-rate question.
var admissionAspects = []struct {
	query    []string
	sentence []string
}{
	{[]string{"gpa", "grade point"}, []string{"gpa", "grade point"}},
	{[]string{"sat"}, []string{"sat"}},
	{[]string{"act"}, []string{"act"}},
	{[]string{"test score"}, []string{"sat", "act", "test score"}},
	{[]string{"acceptance rate", "admit rate", "admission rate"}, []string{"acceptance rate", "admit rate", "admission rate"}},
	{[]string{"deadline", "due date", "when to apply"}, []string{"deadline", "due"}},
	{[]string{"requirement", "require", "prerequisite", "need to"}, []string{"require", "prerequisite", "minimum", "must have"}},
}

func (h *AdmissionsHandler) Synthesize(query string, candidates []types.Candidate) types.DraftAnswer {
	d := newDraft(h.Name())
	lowerQuery := strings.ToLower(query)

	active := make([][]string, 0, len(admissionAspects))
	for _, aspect := range admissionAspects {
		if containsAny(lowerQuery, aspect.query...) {
			active = append(active, aspect.sentence)
		}
	}

	for _, c := range candidates {
		for _, sentence := range splitSentences(c.Text) {
			for _, keywords := range active {
				if containsAny(sentence, keywords...) && queryTermOverlap(query, sentence) > 0 {
					d.addExtracted(sentence, c.Document)
					break
				}
			}
		}
	}

	if len(d.answer.Claims) == 0 {
		return d.build("No indexed admissions source addresses this question.")
	}
	return d.build("")
}
