package fusion_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/fusion"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

func mediumDoc(id string) types.Document {
	return types.Document{
		ID:        id,
		Text:      "placeholder text for " + id,
		SourceURL: "https://example.org/" + id,
		Authority: types.AuthorityMedium,
	}
}

func highDoc(id string) types.Document {
	return types.Document{
		ID:        id,
		Text:      "placeholder text for " + id,
		SourceURL: "https://college.edu/" + id,
		Authority: types.AuthorityHigh,
	}
}

var _ = Describe("Ranker", func() {
	var ranker *Ranker

	BeforeEach(func() {
		ranker = NewRanker(60, 8, 0, 1.5)
	})

	Describe("reciprocal rank fusion", func() {
		It("should sum reciprocal rank contributions from both sides", func() {
			docs := map[string]types.Document{"a": mediumDoc("a")}
			lexical := []types.Hit{{DocID: "a", Rank: 1}}
			vector := []types.Hit{{DocID: "a", Rank: 2}}

			candidates := ranker.Rank(lexical, vector, docs)

			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].LexicalRank).To(Equal(1))
			Expect(candidates[0].VectorRank).To(Equal(2))
			Expect(candidates[0].FusedScore).To(BeNumerically("~", 1.0/61+1.0/62, 1e-12))
		})

		It("should score a single-side document from that side only", func() {
			docs := map[string]types.Document{"a": mediumDoc("a")}
			candidates := ranker.Rank([]types.Hit{{DocID: "a", Rank: 3}}, nil, docs)

			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].VectorRank).To(BeZero())
			Expect(candidates[0].FusedScore).To(BeNumerically("~", 1.0/63, 1e-12))
		})

		It("should assign positional ranks when the hit carries none", func() {
			docs := map[string]types.Document{
				"a": mediumDoc("a"),
				"b": mediumDoc("b"),
			}
			lexical := []types.Hit{{DocID: "a"}, {DocID: "b"}}

			candidates := ranker.Rank(lexical, nil, docs)

			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].ID).To(Equal("a"))
			Expect(candidates[0].LexicalRank).To(Equal(1))
			Expect(candidates[1].LexicalRank).To(Equal(2))
		})
	})

	Describe("authority weighting", func() {
		It("should rank a high-authority source above an otherwise equal one", func() {
			docs := map[string]types.Document{
				"official": highDoc("official"),
				"forum":    mediumDoc("forum"),
			}
			lexical := []types.Hit{{DocID: "official", Rank: 1}}
			vector := []types.Hit{{DocID: "forum", Rank: 1}}

			candidates := ranker.Rank(lexical, vector, docs)

			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].ID).To(Equal("official"))
			Expect(candidates[0].FusedScore).To(BeNumerically("~", 1.5/61, 1e-12))
			Expect(candidates[1].FusedScore).To(BeNumerically("~", 1.0/61, 1e-12))
		})

		It("should not boost medium or low authority", func() {
			docs := map[string]types.Document{
				"med": mediumDoc("med"),
				"low": {ID: "low", SourceURL: "https://blog.example.com/x", Authority: types.AuthorityLow},
			}
			lexical := []types.Hit{{DocID: "med", Rank: 1}, {DocID: "low", Rank: 2}}

			candidates := ranker.Rank(lexical, nil, docs)

			Expect(candidates[0].FusedScore).To(BeNumerically("~", 1.0/61, 1e-12))
			Expect(candidates[1].FusedScore).To(BeNumerically("~", 1.0/62, 1e-12))
		})
	})

	Describe("tie-breaking", func() {
		It("should break an exact score tie by document id", func() {
			// c appears only at lexical rank 1, d only at vector rank 1:
			// both fuse to exactly 1/61.
			docs := map[string]types.Document{
				"c": mediumDoc("c"),
				"d": mediumDoc("d"),
			}
			lexical := []types.Hit{{DocID: "c", Rank: 1}}
			vector := []types.Hit{{DocID: "d", Rank: 1}}

			candidates := ranker.Rank(lexical, vector, docs)

			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].FusedScore).To(Equal(candidates[1].FusedScore))
			Expect(candidates[0].ID).To(Equal("c"))
			Expect(candidates[1].ID).To(Equal("d"))
		})

		It("should produce an identical ordering on repeated runs", func() {
			docs := map[string]types.Document{}
			lexical := []types.Hit{}
			vector := []types.Hit{}
			for i := 1; i <= 20; i++ {
				lid := fmt.Sprintf("lex-%02d", i)
				vid := fmt.Sprintf("vec-%02d", i)
				docs[lid] = mediumDoc(lid)
				docs[vid] = mediumDoc(vid)
				lexical = append(lexical, types.Hit{DocID: lid, Rank: i})
				vector = append(vector, types.Hit{DocID: vid, Rank: i})
			}

			ranker = NewRanker(60, 40, 0, 1.5)
			first := ranker.Rank(lexical, vector, docs)
			for run := 0; run < 5; run++ {
				Expect(ranker.Rank(lexical, vector, docs)).To(Equal(first))
			}
		})
	})

	Describe("relevance floor", func() {
		It("should drop candidates below the normalized floor", func() {
			ranker = NewRanker(60, 8, 0.3, 1.5)
			docs := map[string]types.Document{
				"near": mediumDoc("near"),
				"far":  mediumDoc("far"),
			}
			// rank 1 normalizes to 1/3 of the best attainable score,
			// rank 30 to well under 0.3.
			lexical := []types.Hit{{DocID: "near", Rank: 1}, {DocID: "far", Rank: 30}}

			candidates := ranker.Rank(lexical, nil, docs)

			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].ID).To(Equal("near"))
		})

		It("should keep everything when the floor is zero", func() {
			docs := map[string]types.Document{"far": mediumDoc("far")}
			candidates := ranker.Rank([]types.Hit{{DocID: "far", Rank: 50}}, nil, docs)
			Expect(candidates).To(HaveLen(1))
		})
	})

	Describe("truncation and hydration", func() {
		It("should truncate to the top candidates", func() {
			ranker = NewRanker(60, 3, 0, 1.5)
			docs := map[string]types.Document{}
			lexical := []types.Hit{}
			for i := 1; i <= 10; i++ {
				id := fmt.Sprintf("doc-%02d", i)
				docs[id] = mediumDoc(id)
				lexical = append(lexical, types.Hit{DocID: id, Rank: i})
			}

			candidates := ranker.Rank(lexical, nil, docs)

			Expect(candidates).To(HaveLen(3))
			Expect(candidates[0].ID).To(Equal("doc-01"))
			Expect(candidates[1].ID).To(Equal("doc-02"))
			Expect(candidates[2].ID).To(Equal("doc-03"))
		})

		It("should drop hits whose document was never hydrated", func() {
			docs := map[string]types.Document{"a": mediumDoc("a")}
			lexical := []types.Hit{{DocID: "a", Rank: 1}, {DocID: "ghost", Rank: 2}}

			candidates := ranker.Rank(lexical, nil, docs)

			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].ID).To(Equal("a"))
		})

		It("should handle two empty sides", func() {
			Expect(ranker.Rank(nil, nil, map[string]types.Document{})).To(BeEmpty())
		})
	})

	Describe("NewRanker", func() {
		It("should fall back to defaults for non-positive parameters", func() {
			r := NewRanker(0, 0, 0, 0)
			Expect(r.K).To(Equal(60))
			Expect(r.TopK).To(Equal(8))
			Expect(r.AuthorityBoost).To(Equal(1.5))
		})
	})
})
