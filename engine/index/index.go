package index

import (
	"context"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// Lexical is the external keyword index the engine queries. Implementations
// return hits ordered by descending relevance with 1-indexed ranks.
type Lexical interface {
	Query(ctx context.Context, query string, limit int) ([]types.Hit, error)
}

// Vector is the external similarity index. Adapters take raw query text and
// may embed internally.
type Vector interface {
	Query(ctx context.Context, query string, limit int) ([]types.Hit, error)
}

// DocumentStore hydrates documents by id after retrieval.
type DocumentStore interface {
	Get(ctx context.Context, id string) (types.Document, error)
}

// Writer is the population surface the HTTP boundary uses to load a corpus
// into an adapter. It is corpus plumbing, not part of the answer path.
type Writer interface {
	Index(ctx context.Context, docs ...types.Document) error
	Delete(ctx context.Context, ids ...string) error
	Reset(ctx context.Context) error
	Count() int
}
