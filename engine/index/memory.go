package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// MemoryIndex is an in-process index serving both the lexical and vector
// sides plus document hydration. The lexical side scores by query-term
// frequency, the vector side by bag-of-words cosine similarity. It backs
// unit tests and zero-dependency wiring.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[string]types.Document
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[string]types.Document)}
}

func (m *MemoryIndex) Index(ctx context.Context, docs ...types.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("document without id")
		}
		if d.Authority == "" {
			d.Authority = types.AuthorityFromURL(d.SourceURL)
		}
		m.docs[d.ID] = d
	}
	return nil
}

func (m *MemoryIndex) Delete(ctx context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.docs, id)
	}
	return nil
}

func (m *MemoryIndex) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]types.Document)
	return nil
}

func (m *MemoryIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *MemoryIndex) Get(ctx context.Context, id string) (types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return types.Document{}, fmt.Errorf("document %q not found", id)
	}
	return doc, nil
}

// Lexical returns the term-frequency side of the index.
func (m *MemoryIndex) Lexical() Lexical { return memoryLexical{m} }

// Vector returns the cosine-similarity side of the index.
func (m *MemoryIndex) Vector() Vector { return memoryVector{m} }

type memoryLexical struct{ m *MemoryIndex }

func (l memoryLexical) Query(ctx context.Context, query string, limit int) ([]types.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.m.mu.RLock()
	defer l.m.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	scored := make([]types.Hit, 0)
	for id, doc := range l.m.docs {
		content := strings.ToLower(doc.Title + " " + doc.Text)
		score := 0.0
		for _, term := range terms {
			if strings.Contains(content, term) {
				score++
			}
		}
		score /= float64(len(terms))
		if score > 0 {
			scored = append(scored, types.Hit{DocID: id, Score: score})
		}
	}

	return rankHits(scored, limit), nil
}

type memoryVector struct{ m *MemoryIndex }

func (v memoryVector) Query(ctx context.Context, query string, limit int) ([]types.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.m.mu.RLock()
	defer v.m.mu.RUnlock()

	qv := termVector(query)
	if len(qv) == 0 {
		return nil, nil
	}

	scored := make([]types.Hit, 0)
	for id, doc := range v.m.docs {
		sim := cosine(qv, termVector(doc.Title+" "+doc.Text))
		if sim > 0 {
			scored = append(scored, types.Hit{DocID: id, Score: sim})
		}
	}

	return rankHits(scored, limit), nil
}

// rankHits orders hits by descending score, breaking ties by document id so
// repeated queries over the same corpus produce identical rankings, then
// assigns 1-indexed ranks and truncates.
func rankHits(hits []types.Hit, limit int) []types.Hit {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocID < hits[j].DocID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	for i := range hits {
		hits[i].Rank = i + 1
	}
	return hits
}

func termVector(s string) map[string]float64 {
	v := make(map[string]float64)
	for _, term := range strings.Fields(strings.ToLower(s)) {
		term = strings.Trim(term, ".,;:!?()\"'")
		if term != "" {
			v[term]++
		}
	}
	return v
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for t, w := range a {
		na += w * w
		if bw, ok := b[t]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
