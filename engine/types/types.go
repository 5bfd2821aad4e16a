package types

import (
	"strings"
	"time"
)

// AuthorityLevel is the trust tier assigned to a document's source domain.
type AuthorityLevel string

const (
	AuthorityHigh   AuthorityLevel = "high"
	AuthorityMedium AuthorityLevel = "medium"
	AuthorityLow    AuthorityLevel = "low"
)

// AuthorityFromURL derives the authority level from the source domain.
// Institutional and government domains are considered high-trust.
func AuthorityFromURL(sourceURL string) AuthorityLevel {
	u := strings.ToLower(sourceURL)
	host := u
	if i := strings.Index(u, "://"); i >= 0 {
		host = u[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	switch {
	case strings.HasSuffix(host, ".edu"), strings.HasSuffix(host, ".gov"):
		return AuthorityHigh
	case strings.HasSuffix(host, ".org"):
		return AuthorityMedium
	default:
		return AuthorityLow
	}
}

// Document is one indexed corpus entry with its provenance metadata.
// Documents are owned by the external index and immutable once retrieved.
type Document struct {
	ID           string         `json:"id"`
	Text         string         `json:"text"`
	SourceURL    string         `json:"source_url"`
	Title        string         `json:"title"`
	Authority    AuthorityLevel `json:"authority_level"`
	RecordType   string         `json:"record_type"`
	LastVerified time.Time      `json:"last_verified"`
}

// Hit is the normalized shape both index adapters return: a document
// reference at a 1-indexed rank with the index's own raw score.
type Hit struct {
	DocID string  `json:"doc_id"`
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// Candidate is a retrieved document annotated with its per-side ranks and
// fused score for a single query. A rank of 0 means the document did not
// appear on that side; at least one side is always set.
type Candidate struct {
	Document

	LexicalRank int     `json:"lexical_rank,omitempty"`
	VectorRank  int     `json:"vector_rank,omitempty"`
	FusedScore  float64 `json:"fused_score"`
}

// BothRanks reports whether the candidate appeared in both rankings.
func (c Candidate) BothRanks() bool {
	return c.LexicalRank > 0 && c.VectorRank > 0
}

// RankSum is the combined rank across the sides the candidate appeared on.
func (c Candidate) RankSum() int {
	return c.LexicalRank + c.VectorRank
}

// Claim is one atomic factual assertion within a synthesized answer.
// Computed claims were produced by a deterministic calculator and cite the
// documents that fed their inputs.
type Claim struct {
	Text        string   `json:"text"`
	CitationIDs []string `json:"citation_ids,omitempty"`
	Computed    bool     `json:"computed,omitempty"`
}

// Cited reports whether the claim carries at least one citation.
func (c Claim) Cited() bool {
	return len(c.CitationIDs) > 0
}

// Citation is one entry in an answer's deduplicated citation registry.
type Citation struct {
	ID        string `json:"id"`
	SourceURL string `json:"source_url"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
}

// DraftAnswer is the structured output of a handler's synthesis step,
// before the coverage gate and prose formatting.
type DraftAnswer struct {
	HandlerUsed string     `json:"handler_used"`
	Claims      []Claim    `json:"claims"`
	Note        string     `json:"note,omitempty"`
	Citations   []Citation `json:"citations"`

	// NothingToAssert distinguishes "the question asks for no factual
	// content" from "the evidence was insufficient". Only the former
	// counts as full coverage with zero claims.
	NothingToAssert bool `json:"nothing_to_assert,omitempty"`
}

// Answer is the final, externally visible result of one query.
// Constructed once, immutable, never persisted by the engine.
type Answer struct {
	Text        string     `json:"text"`
	Citations   []Citation `json:"citations"`
	Confidence  float64    `json:"confidence"`
	Abstained   bool       `json:"abstained"`
	HandlerUsed string     `json:"handler_used"`
}
