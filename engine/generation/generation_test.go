package generation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/generation"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

func sampleDraft() types.DraftAnswer {
	return types.DraftAnswer{
		HandlerUsed: "admissions",
		Claims: []types.Claim{
			{Text: "Program X requires a 3.5 GPA", CitationIDs: []string{"prog-x"}},
			{Text: "Applications are due January 15", CitationIDs: []string{"prog-x", "deadlines"}},
		},
		Citations: []types.Citation{
			{ID: "prog-x", Title: "Program X Requirements", SourceURL: "https://college.edu/program-x"},
			{ID: "deadlines", Title: "Application Deadlines", SourceURL: "https://college.edu/deadlines"},
		},
	}
}

var _ = Describe("VerifyMarkers", func() {
	It("should accept prose whose markers all resolve", func() {
		prose := "Program X requires a 3.5 GPA [prog-x], with applications due January 15 [prog-x][deadlines]."
		Expect(VerifyMarkers(prose, sampleDraft())).To(Succeed())
	})

	It("should reject prose with an unknown marker", func() {
		prose := "Program X requires a 3.5 GPA [prog-x], see also [wikipedia]."
		err := VerifyMarkers(prose, sampleDraft())
		Expect(err).To(MatchError(ErrRejected))
		Expect(err.Error()).To(ContainSubstring("wikipedia"))
	})

	It("should reject prose that dropped every marker", func() {
		prose := "Program X requires a 3.5 GPA and applications are due January 15."
		Expect(VerifyMarkers(prose, sampleDraft())).To(MatchError(ErrRejected))
	})

	It("should accept markerless prose for a draft with no claims", func() {
		draft := types.DraftAnswer{HandlerUsed: "generic", NothingToAssert: true}
		Expect(VerifyMarkers("Ask me about admissions, aid, or costs.", draft)).To(Succeed())
	})
})

var _ = Describe("RenderStructured", func() {
	It("should render each claim with its inline markers", func() {
		out := RenderStructured(sampleDraft())

		Expect(out).To(ContainSubstring("Program X requires a 3.5 GPA [prog-x]"))
		Expect(out).To(ContainSubstring("Applications are due January 15 [prog-x] [deadlines]"))
	})

	It("should list every source once at the end", func() {
		out := RenderStructured(sampleDraft())

		Expect(out).To(ContainSubstring("Sources:"))
		Expect(out).To(ContainSubstring("[prog-x] Program X Requirements — https://college.edu/program-x"))
		Expect(out).To(ContainSubstring("[deadlines] Application Deadlines — https://college.edu/deadlines"))
	})

	It("should pass its own marker verification", func() {
		draft := sampleDraft()
		Expect(VerifyMarkers(RenderStructured(draft), draft)).To(Succeed())
	})

	It("should render a note-only draft as the note", func() {
		draft := types.DraftAnswer{Note: "Ask a question about admissions, financial aid, or costs to get a sourced answer."}
		Expect(RenderStructured(draft)).To(Equal("Ask a question about admissions, financial aid, or costs to get a sourced answer."))
	})
})
