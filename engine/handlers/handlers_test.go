package handlers_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/handlers"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

func candidate(id, text string) types.Candidate {
	return types.Candidate{
		Document: types.Document{
			ID:        id,
			Text:      text,
			Title:     "Source " + id,
			SourceURL: "https://college.edu/" + id,
			Authority: types.AuthorityHigh,
		},
		LexicalRank: 1,
		FusedScore:  1.0 / 61,
	}
}

var _ = Describe("AdmissionsHandler", func() {
	handler := NewAdmissionsHandler()

	It("should match admissions vocabulary", func() {
		Expect(handler.Matches("What GPA does Program X require?")).To(BeTrue())
		Expect(handler.Matches("What is the acceptance rate?")).To(BeTrue())
		Expect(handler.Matches("How much does housing cost?")).To(BeFalse())
	})

	It("should extract the sentence that answers the question, cited", func() {
		candidates := []types.Candidate{
			candidate("prog-x", "Program X requires a minimum 3.5 GPA for admission. The campus gym is open daily."),
		}

		draft := handler.Synthesize("What GPA does Program X require?", candidates)

		Expect(draft.HandlerUsed).To(Equal("admissions"))
		Expect(draft.Claims).To(HaveLen(1))
		Expect(draft.Claims[0].Text).To(ContainSubstring("3.5 GPA"))
		Expect(draft.Claims[0].CitationIDs).To(Equal([]string{"prog-x"}))
		Expect(draft.Citations).To(HaveLen(1))
		Expect(draft.Citations[0].ID).To(Equal("prog-x"))
		Expect(draft.Citations[0].Snippet).ToNot(BeEmpty())
	})

	It("should not let a GPA fact answer an acceptance-rate question", func() {
		candidates := []types.Candidate{
			candidate("prog-x", "Program X requires a minimum 3.5 GPA for admission."),
		}

		draft := handler.Synthesize("What is the acceptance rate for Program X?", candidates)

		Expect(draft.Claims).To(BeEmpty())
		Expect(draft.NothingToAssert).To(BeFalse())
		Expect(draft.Note).ToNot(BeEmpty())
	})

	It("should register each cited document once across claims", func() {
		candidates := []types.Candidate{
			candidate("prog-x", "Program X requires a minimum 3.5 GPA for admission. "+
				"Honors applicants to Program X must have a GPA above 3.8."),
		}

		draft := handler.Synthesize("What GPA does Program X require?", candidates)

		Expect(draft.Claims).To(HaveLen(2))
		Expect(draft.Citations).To(HaveLen(1))
		Expect(draft.Citations[0].ID).To(Equal("prog-x"))
	})

	It("should gather deadline sentences for deadline questions", func() {
		candidates := []types.Candidate{
			candidate("deadlines", "The application deadline for fall admission is January 15. Transfer students apply by March 1."),
		}

		draft := handler.Synthesize("What is the application deadline for fall?", candidates)

		Expect(draft.Claims).ToNot(BeEmpty())
		Expect(draft.Claims[0].Text).To(ContainSubstring("January 15"))
	})
})

var _ = Describe("FinancialAidHandler", func() {
	handler := NewFinancialAidHandler()

	It("should match aid vocabulary", func() {
		Expect(handler.Matches("Am I eligible for need-based aid?")).To(BeTrue())
		Expect(handler.Matches("How do scholarships work here?")).To(BeTrue())
		Expect(handler.Matches("What SAT score do I need?")).To(BeFalse())
	})

	It("should extract aid sentences with citations", func() {
		candidates := []types.Candidate{
			candidate("aid", "The university meets full demonstrated need through grants and work-study."),
		}

		draft := handler.Synthesize("Does the university offer need-based grants?", candidates)

		Expect(draft.Claims).To(HaveLen(1))
		Expect(draft.Claims[0].CitationIDs).To(Equal([]string{"aid"}))
	})

	It("should compute an aid index when every figure is present", func() {
		candidates := []types.Candidate{
			candidate("aid-profile", "The Lee family reported an income of $85,000 and assets of $40,000. "+
				"They are a family of 4 with 1 student in college."),
		}

		draft := handler.Synthesize("What student aid index would the Lee family qualify for?", candidates)

		var computed []types.Claim
		for _, c := range draft.Claims {
			if c.Computed {
				computed = append(computed, c)
			}
		}
		Expect(computed).To(HaveLen(1))
		Expect(computed[0].Text).To(ContainSubstring("$23130"))
		Expect(computed[0].CitationIDs).To(Equal([]string{"aid-profile"}))
	})

	It("should not compute an aid index when a figure is missing", func() {
		candidates := []types.Candidate{
			candidate("aid-profile", "The Lee family reported an income of $85,000 and assets of $40,000."),
		}

		draft := handler.Synthesize("What student aid index would the Lee family qualify for?", candidates)

		for _, c := range draft.Claims {
			Expect(c.Computed).To(BeFalse())
		}
	})

	It("should drop the computed claim when the calculator rejects the inputs", func() {
		// three in college for a family of two fails validation
		candidates := []types.Candidate{
			candidate("aid-profile", "The family reported an income of $85,000 and assets of $40,000. "+
				"They are a family of 2 with 3 students in college."),
		}

		draft := handler.Synthesize("What student aid index would the family qualify for?", candidates)

		for _, c := range draft.Claims {
			Expect(c.Computed).To(BeFalse())
		}
	})
})

var _ = Describe("CostsHandler", func() {
	handler := NewCostsHandler()

	It("should match cost vocabulary", func() {
		Expect(handler.Matches("How much is tuition?")).To(BeTrue())
		Expect(handler.Matches("What is the net price after aid?")).To(BeTrue())
		Expect(handler.Matches("What GPA do I need?")).To(BeFalse())
	})

	It("should extract only sentences carrying a dollar figure", func() {
		candidates := []types.Candidate{
			candidate("costs", "Tuition is $30,000 per year. Tuition covers all instruction."),
		}

		draft := handler.Synthesize("How much is tuition?", candidates)

		Expect(draft.Claims).To(HaveLen(1))
		Expect(draft.Claims[0].Text).To(ContainSubstring("$30,000"))
	})

	It("should compute a cost of attendance from the budget lines", func() {
		candidates := []types.Candidate{
			candidate("budget", "Tuition is $30,000 per year. Mandatory fees are $1,200. Housing costs $10,000."),
		}

		draft := handler.Synthesize("What is the total cost of attendance?", candidates)

		var computed []types.Claim
		for _, c := range draft.Claims {
			if c.Computed {
				computed = append(computed, c)
			}
		}
		Expect(computed).To(HaveLen(1))
		Expect(computed[0].Text).To(ContainSubstring("$41200"))
		Expect(computed[0].CitationIDs).To(Equal([]string{"budget"}))
	})

	It("should add a net price when gift aid is present and asked for", func() {
		candidates := []types.Candidate{
			candidate("budget", "Tuition is $30,000 per year. Mandatory fees are $1,200. Housing costs $10,000. "+
				"The average grant award is $15,000."),
		}

		draft := handler.Synthesize("What is the total net price after aid?", candidates)

		texts := []string{}
		for _, c := range draft.Claims {
			if c.Computed {
				texts = append(texts, c.Text)
			}
		}
		Expect(texts).To(HaveLen(2))
		Expect(texts[0]).To(ContainSubstring("$41200"))
		Expect(texts[1]).To(ContainSubstring("$26200"))
	})

	It("should not compute a total from a single budget line", func() {
		candidates := []types.Candidate{
			candidate("budget", "Tuition is $30,000 per year."),
		}

		draft := handler.Synthesize("What is the total cost of attendance?", candidates)

		for _, c := range draft.Claims {
			Expect(c.Computed).To(BeFalse())
		}
	})
})

var _ = Describe("GenericHandler", func() {
	handler := NewGenericHandler()

	It("should match every query", func() {
		Expect(handler.Matches("anything at all")).To(BeTrue())
	})

	It("should signal nothing-to-assert for greetings", func() {
		draft := handler.Synthesize("Hello!", nil)

		Expect(draft.NothingToAssert).To(BeTrue())
		Expect(draft.Claims).To(BeEmpty())
		Expect(draft.Note).ToNot(BeEmpty())
	})

	It("should extract the sentences that best overlap the query", func() {
		candidates := []types.Candidate{
			candidate("riverside", "Riverside College offers an accredited nursing program. The library is open until midnight."),
		}

		draft := handler.Synthesize("Does Riverside College offer a nursing program?", candidates)

		Expect(draft.Claims).To(HaveLen(1))
		Expect(draft.Claims[0].Text).To(ContainSubstring("nursing program"))
		Expect(draft.Claims[0].CitationIDs).To(Equal([]string{"riverside"}))
	})

	It("should cap the number of extracted claims", func() {
		candidates := []types.Candidate{
			candidate("guide", "Riverside College has a nursing program. The nursing program at Riverside College is accredited. "+
				"Riverside College admits nursing program students each fall. Riverside College expanded its nursing program in 2024. "+
				"The nursing program at Riverside College runs four years."),
		}

		draft := handler.Synthesize("Tell me about the Riverside College nursing program", candidates)

		Expect(len(draft.Claims)).To(BeNumerically("<=", 3))
		Expect(draft.Claims).ToNot(BeEmpty())
	})

	It("should produce an evidence-gap draft when nothing overlaps", func() {
		candidates := []types.Candidate{
			candidate("unrelated", "The cafeteria serves pancakes on Fridays."),
		}

		draft := handler.Synthesize("Does Riverside College offer a nursing program?", candidates)

		Expect(draft.Claims).To(BeEmpty())
		Expect(draft.NothingToAssert).To(BeFalse())
	})
})
