package handlers

import (
	"fmt"
	"regexp"

	"github.com/mudler/xlog"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/calculators"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// CostsHandler answers tuition and cost questions. When the query asks for
// an overall figure and the extracted claims carry the budget components,
// it computes a cost of attendance, and a net price when gift aid is also
// present.
type CostsHandler struct{}

func NewCostsHandler() *CostsHandler { return &CostsHandler{} }

func (h *CostsHandler) Name() string  { return "costs" }
func (h *CostsHandler) Priority() int { return 10 }

var costsQueryRe = regexp.MustCompile(`(?i)\b(tuition|costs?|price|room and board|housing|fees|expenses?|afford|net price|attendance)`)

func (h *CostsHandler) Matches(query string) bool {
	return costsQueryRe.MatchString(query)
}

func (h *CostsHandler) Synthesize(query string, candidates []types.Candidate) types.DraftAnswer {
	d := newDraft(h.Name())

	for _, c := range candidates {
		for _, sentence := range splitSentences(c.Text) {
			if !containsAny(sentence, "tuition", "fees", "room", "board", "housing", "food", "books", "cost", "price", "transportation", "grant", "scholarship") {
				continue
			}
			if _, ok := firstDollarAmount(sentence); !ok {
				continue
			}
			d.addExtracted(sentence, c.Document)
		}
	}

	if containsAny(query, "total", "overall", "cost of attendance", "net price", "all in") {
		h.computeTotals(d, containsAny(query, "net price", "after aid"))
	}

	if len(d.answer.Claims) == 0 {
		return d.build("No indexed cost source addresses this question.")
	}
	return d.build("")
}

type costComponent struct {
	keywords []string
	assign   func(*calculators.CostComponents, float64)
}

var costComponentTable = []costComponent{
	{[]string{"tuition"}, func(c *calculators.CostComponents, v float64) { c.Tuition = v }},
	{[]string{"fees"}, func(c *calculators.CostComponents, v float64) { c.Fees = v }},
	{[]string{"housing", "room"}, func(c *calculators.CostComponents, v float64) { c.Housing = v }},
	{[]string{"food", "board", "meal"}, func(c *calculators.CostComponents, v float64) { c.Food = v }},
	{[]string{"books", "supplies"}, func(c *calculators.CostComponents, v float64) { c.Books = v }},
	{[]string{"personal"}, func(c *calculators.CostComponents, v float64) { c.Personal = v }},
	{[]string{"transportation", "travel"}, func(c *calculators.CostComponents, v float64) { c.Transportation = v }},
}

// computeTotals assembles budget components from the extracted claims and
// emits cost-of-attendance (and optionally net-price) computed claims.
// Fewer than two components is not a total worth asserting.
func (h *CostsHandler) computeTotals(d *draft, wantNetPrice bool) {
	var (
		components calculators.CostComponents
		found      int
		giftAid    float64
		haveAid    bool
		inputs     []types.Claim
		aidInputs  []types.Claim
	)

	for _, claim := range d.answer.Claims {
		amount, ok := firstDollarAmount(claim.Text)
		if !ok || claim.Computed {
			continue
		}
		if containsAny(claim.Text, "grant", "scholarship") {
			if !haveAid {
				giftAid, haveAid = amount, true
				aidInputs = append(aidInputs, claim)
			}
			continue
		}
		for _, comp := range costComponentTable {
			if containsAny(claim.Text, comp.keywords...) {
				comp.assign(&components, amount)
				found++
				inputs = append(inputs, claim)
				break
			}
		}
	}

	if found < 2 {
		return
	}

	total, err := calculators.CostOfAttendance(components)
	if err != nil {
		xlog.Debug("Dropping cost-of-attendance claim", "error", err)
		return
	}
	d.addComputed(fmt.Sprintf("Adding up the reported budget lines gives an estimated cost of attendance of $%.0f.", total), inputs)

	if wantNetPrice && haveAid {
		net, err := calculators.NetPrice(total, giftAid)
		if err != nil {
			xlog.Debug("Dropping net-price claim", "error", err)
			return
		}
		d.addComputed(fmt.Sprintf("After $%.0f in gift aid, the estimated net price is $%.0f.", giftAid, net), append(inputs, aidInputs...))
	}
}
