package retrieval

import (
	"context"
	"errors"
	"time"

	"github.com/mudler/xlog"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/index"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// ErrUnavailable is returned when both index sides failed or timed out.
// A single failed side is not an error; retrieval degrades to whichever
// index responded.
var ErrUnavailable = errors.New("retrieval unavailable: both indexes failed")

// Retriever issues the lexical and vector queries concurrently, each with
// its own timeout, and normalizes the results into ranked hits.
type Retriever struct {
	lexical index.Lexical
	vector  index.Vector
	limit   int
	timeout time.Duration
}

func New(lexical index.Lexical, vector index.Vector, limit int, timeout time.Duration) *Retriever {
	if limit <= 0 {
		limit = 50
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Retriever{lexical: lexical, vector: vector, limit: limit, timeout: timeout}
}

type sideResult struct {
	hits []types.Hit
	err  error
}

// Retrieve runs both sides and blocks until each completes or times out.
// The limit applies per side, before fusion.
func (r *Retriever) Retrieve(ctx context.Context, query string) (lexical, vector []types.Hit, err error) {
	lexicalCh := make(chan sideResult, 1)
	vectorCh := make(chan sideResult, 1)

	go func() {
		sideCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		hits, err := r.lexical.Query(sideCtx, query, r.limit)
		lexicalCh <- sideResult{hits: hits, err: err}
	}()

	go func() {
		sideCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		hits, err := r.vector.Query(sideCtx, query, r.limit)
		vectorCh <- sideResult{hits: hits, err: err}
	}()

	lexicalRes := <-lexicalCh
	vectorRes := <-vectorCh

	if lexicalRes.err != nil {
		xlog.Warn("Lexical retrieval failed, degrading to vector side", "error", lexicalRes.err)
		lexicalRes.hits = nil
	}
	if vectorRes.err != nil {
		xlog.Warn("Vector retrieval failed, degrading to lexical side", "error", vectorRes.err)
		vectorRes.hits = nil
	}

	if lexicalRes.err != nil && vectorRes.err != nil {
		return nil, nil, ErrUnavailable
	}

	return lexicalRes.hits, vectorRes.hits, nil
}
