package handlers

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mudler/xlog"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/calculators"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// FinancialAidHandler answers questions about grants, scholarships, and
// aid eligibility. When the extracted claims carry the full set of family
// finance figures, it computes a student aid index as a computed claim.
type FinancialAidHandler struct{}

func NewFinancialAidHandler() *FinancialAidHandler { return &FinancialAidHandler{} }

func (h *FinancialAidHandler) Name() string  { return "financial-aid" }
func (h *FinancialAidHandler) Priority() int { return 20 }

var (
	aidQueryRe = regexp.MustCompile(`(?i)\b(financial aid|fafsa|grants?|scholarships?|aid index|sai\b|efc\b|work.study|need.based|aid eligib)`)

	familySizeRe = regexp.MustCompile(`(?i)family (?:size )?of (\d+)`)
	inCollegeRe  = regexp.MustCompile(`(?i)(\d+) (?:students?|child(?:ren)?) in college`)

	// Income and assets often share a sentence, so each figure is parsed
	// next to its own keyword rather than taking the first dollar amount.
	incomeRe = regexp.MustCompile(`(?i)income[^.$]*\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	assetsRe = regexp.MustCompile(`(?i)(?:assets|savings)[^.$]*\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
)

func (h *FinancialAidHandler) Matches(query string) bool {
	return aidQueryRe.MatchString(query)
}

func (h *FinancialAidHandler) Synthesize(query string, candidates []types.Candidate) types.DraftAnswer {
	d := newDraft(h.Name())

	for _, c := range candidates {
		for _, sentence := range splitSentences(c.Text) {
			if containsAny(sentence, "financial aid", "fafsa", "grant", "scholarship", "aid index", "work-study", "need-based", "income", "assets", "family", "in college") &&
				queryTermOverlap(query, sentence) > 0 {
				d.addExtracted(sentence, c.Document)
			}
		}
	}

	if containsAny(query, "aid index", "sai", "eligib", "how much aid") {
		h.computeAidIndex(d)
	}

	if len(d.answer.Claims) == 0 {
		return d.build("No indexed financial-aid source addresses this question.")
	}
	return d.build("")
}

// computeAidIndex derives a student aid index when the extracted claims
// contain income, assets, family size, and enrolled-student figures. The
// computed claim cites every claim that contributed an input; if any
// figure is missing or the calculator rejects the inputs, no claim is
// added and coverage reflects the gap.
func (h *FinancialAidHandler) computeAidIndex(d *draft) {
	var (
		income, assets         float64
		familySize, inCollege  int
		haveIncome, haveAssets bool
		inputs                 []types.Claim
	)

	for _, claim := range d.answer.Claims {
		used := false
		if !haveIncome {
			if m := incomeRe.FindStringSubmatch(claim.Text); m != nil {
				if v, ok := parseDollars(m[1]); ok {
					income, haveIncome = v, true
					used = true
				}
			}
		}
		if !haveAssets {
			if m := assetsRe.FindStringSubmatch(claim.Text); m != nil {
				if v, ok := parseDollars(m[1]); ok {
					assets, haveAssets = v, true
					used = true
				}
			}
		}
		if familySize == 0 {
			if m := familySizeRe.FindStringSubmatch(claim.Text); m != nil {
				familySize, _ = strconv.Atoi(m[1])
				used = true
			}
		}
		if inCollege == 0 {
			if m := inCollegeRe.FindStringSubmatch(claim.Text); m != nil {
				inCollege, _ = strconv.Atoi(m[1])
				used = true
			}
		}
		if used {
			inputs = append(inputs, claim)
		}
	}

	if !haveIncome || !haveAssets || familySize == 0 || inCollege == 0 {
		return
	}

	index, err := calculators.StudentAidIndex(income, assets, familySize, inCollege)
	if err != nil {
		xlog.Debug("Dropping aid-index claim", "error", err)
		return
	}

	d.addComputed(fmt.Sprintf("Based on a reported income of $%.0f, assets of $%.0f, a family size of %d, and %d in college, the estimated student aid index is $%.0f.",
		income, assets, familySize, inCollege, index), inputs)
}
