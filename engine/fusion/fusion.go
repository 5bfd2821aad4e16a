package fusion

import (
	"sort"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// Ranker merges the two retrieval sides with reciprocal rank fusion,
// applies the authority multiplier for high-trust sources, and truncates
// the fused list to the top candidates above the relevance floor.
type Ranker struct {
	// K is the RRF constant: a document at rank r contributes 1/(K+r).
	K int
	// TopK is the maximum number of candidates returned after fusion.
	TopK int
	// Floor rejects candidates whose fused score falls below this fraction
	// of the best attainable fused score (rank 1 on both sides with the
	// authority boost). Raw RRF scores are tiny, so the floor is defined
	// on this normalized scale.
	Floor float64
	// AuthorityBoost multiplies the fused score of high-authority sources.
	AuthorityBoost float64
}

func NewRanker(k, topK int, floor, authorityBoost float64) *Ranker {
	if k <= 0 {
		k = 60
	}
	if topK <= 0 {
		topK = 8
	}
	if authorityBoost <= 0 {
		authorityBoost = 1.5
	}
	return &Ranker{K: k, TopK: topK, Floor: floor, AuthorityBoost: authorityBoost}
}

// Rank fuses the two ranked hit lists into candidates ordered by descending
// fused score. Documents missing from docs are dropped: a candidate that
// cannot be hydrated cannot be cited. The ordering is fully deterministic
// for fixed inputs.
func (r *Ranker) Rank(lexical, vector []types.Hit, docs map[string]types.Document) []types.Candidate {
	byID := make(map[string]*types.Candidate)

	for i, hit := range lexical {
		doc, ok := docs[hit.DocID]
		if !ok {
			continue
		}
		rank := hit.Rank
		if rank <= 0 {
			rank = i + 1
		}
		c := byID[hit.DocID]
		if c == nil {
			c = &types.Candidate{Document: doc}
			byID[hit.DocID] = c
		}
		c.LexicalRank = rank
	}

	for i, hit := range vector {
		doc, ok := docs[hit.DocID]
		if !ok {
			continue
		}
		rank := hit.Rank
		if rank <= 0 {
			rank = i + 1
		}
		c := byID[hit.DocID]
		if c == nil {
			c = &types.Candidate{Document: doc}
			byID[hit.DocID] = c
		}
		c.VectorRank = rank
	}

	floorScore := r.Floor * r.maxFusedScore()

	candidates := make([]types.Candidate, 0, len(byID))
	for _, c := range byID {
		base := 0.0
		if c.LexicalRank > 0 {
			base += 1.0 / float64(r.K+c.LexicalRank)
		}
		if c.VectorRank > 0 {
			base += 1.0 / float64(r.K+c.VectorRank)
		}
		c.FusedScore = base * r.multiplier(c.Authority)
		if c.FusedScore >= floorScore {
			candidates = append(candidates, *c)
		}
	}

	// Descending fused score; ties prefer both-ranks-present, then lower
	// combined rank sum, then document id. The comparator is total, so
	// sort.Slice is deterministic here.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.FusedScore != b.FusedScore {
			return a.FusedScore > b.FusedScore
		}
		if a.BothRanks() != b.BothRanks() {
			return a.BothRanks()
		}
		if a.RankSum() != b.RankSum() {
			return a.RankSum() < b.RankSum()
		}
		return a.ID < b.ID
	})

	if len(candidates) > r.TopK {
		candidates = candidates[:r.TopK]
	}
	return candidates
}

func (r *Ranker) multiplier(level types.AuthorityLevel) float64 {
	if level == types.AuthorityHigh {
		return r.AuthorityBoost
	}
	return 1.0
}

// maxFusedScore is the score of a high-authority document at rank 1 on
// both sides, the anchor for the normalized relevance floor.
func (r *Ranker) maxFusedScore() float64 {
	return 2.0 / float64(r.K+1) * r.AuthorityBoost
}
