package index

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/sashabaranov/go-openai"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// ChromemIndex adapts a persistent chromem-go collection as the vector side
// of retrieval. Embeddings are computed through an OpenAI-compatible client,
// so the adapter takes raw query text.
type ChromemIndex struct {
	collectionName  string
	collection      *chromem.Collection
	db              *chromem.DB
	client          *openai.Client
	embeddingsModel string
}

func NewChromemIndex(collection, path string, openaiClient *openai.Client, embeddingsModel string) (*ChromemIndex, error) {
	db, err := chromem.NewPersistentDB(path, true)
	if err != nil {
		return nil, err
	}

	ci := &ChromemIndex{
		collectionName:  collection,
		db:              db,
		client:          openaiClient,
		embeddingsModel: embeddingsModel,
	}

	c, err := db.GetOrCreateCollection(collection, nil, ci.embedding())
	if err != nil {
		return nil, err
	}
	ci.collection = c

	return ci, nil
}

func (c *ChromemIndex) embedding() chromem.EmbeddingFunc {
	return chromem.EmbeddingFunc(
		func(ctx context.Context, text string) ([]float32, error) {
			resp, err := c.client.CreateEmbeddings(ctx,
				openai.EmbeddingRequestStrings{
					Input: []string{text},
					Model: openai.EmbeddingModel(c.embeddingsModel),
				},
			)
			if err != nil {
				return []float32{}, fmt.Errorf("error getting embedding: %v", err)
			}

			if len(resp.Data) == 0 {
				return []float32{}, fmt.Errorf("no response from embeddings API")
			}

			return resp.Data[0].Embedding, nil
		},
	)
}

func (c *ChromemIndex) Index(ctx context.Context, docs ...types.Document) error {
	if len(docs) == 0 {
		return nil
	}

	documents := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("document without id")
		}
		if d.Authority == "" {
			d.Authority = types.AuthorityFromURL(d.SourceURL)
		}
		meta := map[string]string{
			"title":       d.Title,
			"source_url":  d.SourceURL,
			"authority":   string(d.Authority),
			"record_type": d.RecordType,
		}
		if !d.LastVerified.IsZero() {
			meta["last_verified"] = d.LastVerified.Format(time.RFC3339)
		}
		documents = append(documents, chromem.Document{
			ID:       d.ID,
			Content:  d.Text,
			Metadata: meta,
		})
	}

	return c.collection.AddDocuments(ctx, documents, runtime.NumCPU())
}

func (c *ChromemIndex) Delete(ctx context.Context, ids ...string) error {
	return c.collection.Delete(ctx, nil, nil, ids...)
}

func (c *ChromemIndex) Reset(ctx context.Context) error {
	if err := c.db.DeleteCollection(c.collectionName); err != nil {
		return fmt.Errorf("error deleting collection: %v", err)
	}
	collection, err := c.db.GetOrCreateCollection(c.collectionName, nil, c.embedding())
	if err != nil {
		return fmt.Errorf("error creating collection: %v", err)
	}
	c.collection = collection
	return nil
}

func (c *ChromemIndex) Count() int {
	return c.collection.Count()
}

func (c *ChromemIndex) Query(ctx context.Context, q string, limit int) ([]types.Hit, error) {
	if count := c.collection.Count(); limit > count {
		limit = count
	}
	if limit == 0 {
		return nil, nil
	}

	results, err := c.collection.Query(ctx, q, limit, nil, nil)
	if err != nil {
		return nil, err
	}

	hits := make([]types.Hit, 0, len(results))
	for i, r := range results {
		hits = append(hits, types.Hit{DocID: r.ID, Rank: i + 1, Score: float64(r.Similarity)})
	}
	return hits, nil
}

func (c *ChromemIndex) Get(ctx context.Context, id string) (types.Document, error) {
	res, err := c.collection.GetByID(ctx, id)
	if err != nil {
		return types.Document{}, err
	}

	doc := types.Document{
		ID:         res.ID,
		Text:       res.Content,
		Title:      res.Metadata["title"],
		SourceURL:  res.Metadata["source_url"],
		Authority:  types.AuthorityLevel(res.Metadata["authority"]),
		RecordType: res.Metadata["record_type"],
	}
	if raw := res.Metadata["last_verified"]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			doc.LastVerified = t
		}
	}
	if doc.Authority == "" {
		doc.Authority = types.AuthorityFromURL(doc.SourceURL)
	}
	return doc, nil
}
