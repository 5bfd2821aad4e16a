// Package engine assembles the grounded-answer pipeline: concurrent
// two-sided retrieval, reciprocal rank fusion with authority weighting,
// priority routing to a single domain handler, cited synthesis, the
// cite-or-abstain coverage gate, and prose formatting through an external
// generator that is never trusted with the citations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mudler/xlog"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/fusion"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/gate"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/generation"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/handlers"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/index"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/retrieval"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// ErrInvalidQuery is the only error Answer surfaces to callers. Every
// other failure degrades into a valid, possibly abstained, Answer.
var ErrInvalidQuery = errors.New("invalid query")

// Engine is safe for concurrent queries: the registry and configuration
// are frozen at construction and the cache stores immutable answer values.
type Engine struct {
	cfg       Config
	retriever *retrieval.Retriever
	store     index.DocumentStore
	ranker    *fusion.Ranker
	registry  *handlers.Registry
	formatter generation.Formatter
	gate      *gate.Gate
	answers   *gocache.Cache
}

// New wires the pipeline. formatter may be nil, in which case answers are
// returned in the structured rendering without a generation call.
func New(cfg Config, lexical index.Lexical, vector index.Vector, store index.DocumentStore, registry *handlers.Registry, formatter generation.Formatter) *Engine {
	var answers *gocache.Cache
	if cfg.CacheTTL > 0 {
		answers = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return &Engine{
		cfg:       cfg,
		retriever: retrieval.New(lexical, vector, cfg.RetrievalLimit, cfg.RetrievalTimeout),
		store:     store,
		ranker:    fusion.NewRanker(cfg.RRFK, cfg.TopK, cfg.RelevanceFloor, cfg.AuthorityBoost),
		registry:  registry,
		formatter: formatter,
		gate:      gate.New(cfg.CoverageThreshold),
		answers:   answers,
	}
}

// Answer runs one query through the full pipeline.
func (e *Engine) Answer(ctx context.Context, query string) (types.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Answer{}, fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}
	if len(query) > e.cfg.MaxQueryLength {
		return types.Answer{}, fmt.Errorf("%w: query exceeds %d characters", ErrInvalidQuery, e.cfg.MaxQueryLength)
	}

	if e.answers != nil {
		if cached, ok := e.answers.Get(query); ok {
			return cloneAnswer(cached.(types.Answer)), nil
		}
	}

	qid := uuid.NewString()

	lexical, vector, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		xlog.Warn("Retrieval unavailable, abstaining", "qid", qid, "error", err)
		return e.finish(query, degradedAnswer()), nil
	}

	docs := e.hydrate(ctx, qid, lexical, vector)
	candidates := e.ranker.Rank(lexical, vector, docs)

	handler := e.registry.Route(query)
	draft := handler.Synthesize(query, candidates)

	answer := e.gate.Evaluate(draft)
	if answer.Abstained {
		xlog.Info("Abstained", "qid", qid, "handler", answer.HandlerUsed, "coverage", answer.Confidence)
		return e.finish(query, answer), nil
	}

	answer.Text = e.formatDraft(ctx, qid, draft)
	xlog.Info("Answered", "qid", qid, "handler", answer.HandlerUsed, "coverage", answer.Confidence, "citations", len(answer.Citations))
	return e.finish(query, answer), nil
}

// hydrate fetches the union of referenced documents once. A document that
// cannot be hydrated is dropped from ranking; without provenance it could
// never be cited.
func (e *Engine) hydrate(ctx context.Context, qid string, lexical, vector []types.Hit) map[string]types.Document {
	docs := make(map[string]types.Document)
	for _, hits := range [][]types.Hit{lexical, vector} {
		for _, hit := range hits {
			if _, ok := docs[hit.DocID]; ok {
				continue
			}
			doc, err := e.store.Get(ctx, hit.DocID)
			if err != nil {
				xlog.Warn("Failed to hydrate document, dropping", "qid", qid, "id", hit.DocID, "error", err)
				continue
			}
			docs[hit.DocID] = doc
		}
	}
	return docs
}

// formatDraft sends the draft through the external formatter and falls
// back to the structured rendering whenever formatting fails or the
// returned prose loses its citation markers.
func (e *Engine) formatDraft(ctx context.Context, qid string, draft types.DraftAnswer) string {
	if e.formatter == nil {
		return generation.RenderStructured(draft)
	}

	prose, err := e.formatter.Format(ctx, draft)
	if err != nil {
		xlog.Warn("Formatter unavailable, returning structured synthesis", "qid", qid, "error", err)
		return generation.RenderStructured(draft)
	}
	if err := generation.VerifyMarkers(prose, draft); err != nil {
		xlog.Warn("Formatter output rejected, returning structured synthesis", "qid", qid, "error", err)
		return generation.RenderStructured(draft)
	}
	return prose
}

// finish stores a private clone so callers mutating the returned answer
// can never reach the cached copy.
func (e *Engine) finish(query string, answer types.Answer) types.Answer {
	if e.answers != nil {
		e.answers.SetDefault(query, cloneAnswer(answer))
	}
	return answer
}

func degradedAnswer() types.Answer {
	return types.Answer{
		Text:        "Both retrieval indexes are currently unavailable, so no evidence could be gathered. Please try again in a moment.",
		Citations:   []types.Citation{},
		Confidence:  0,
		Abstained:   true,
		HandlerUsed: "",
	}
}

// cloneAnswer copies the slice so one caller can never mutate an answer
// handed to another.
func cloneAnswer(a types.Answer) types.Answer {
	citations := make([]types.Citation, len(a.Citations))
	copy(citations, a.Citations)
	a.Citations = citations
	return a
}
