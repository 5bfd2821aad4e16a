package index

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	_ "github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/mudler/xlog"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// BleveIndex adapts a bleve full-text index as the lexical side of
// retrieval and as the document store for hydration.
type BleveIndex struct {
	index    bleve.Index
	analyzer string
}

// NewBleveIndex opens the index at path, creating it with an English
// analyzer mapping when it does not exist yet.
func NewBleveIndex(path, analyzer string) (*BleveIndex, error) {
	if analyzer == "" {
		analyzer = "en"
	}

	idx, err := bleve.Open(path)
	if err != nil {
		mapping := bleve.NewIndexMapping()

		textFieldMapping := bleve.NewTextFieldMapping()
		textFieldMapping.Analyzer = analyzer

		keywordFieldMapping := bleve.NewKeywordFieldMapping()

		docMapping := bleve.NewDocumentMapping()
		docMapping.AddFieldMappingsAt("content", textFieldMapping)
		docMapping.AddFieldMappingsAt("title", textFieldMapping)
		docMapping.AddFieldMappingsAt("source_url", keywordFieldMapping)
		docMapping.AddFieldMappingsAt("authority", keywordFieldMapping)
		docMapping.AddFieldMappingsAt("record_type", keywordFieldMapping)
		docMapping.AddFieldMappingsAt("last_verified", keywordFieldMapping)

		mapping.AddDocumentMapping("_default", docMapping)
		mapping.DefaultAnalyzer = analyzer

		idx, err = bleve.New(path, mapping)
		if err != nil {
			return nil, fmt.Errorf("failed to create bleve index: %w", err)
		}
	}

	return &BleveIndex{index: idx, analyzer: analyzer}, nil
}

func (b *BleveIndex) Close() error {
	return b.index.Close()
}

func (b *BleveIndex) Index(ctx context.Context, docs ...types.Document) error {
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("document without id")
		}
		if d.Authority == "" {
			d.Authority = types.AuthorityFromURL(d.SourceURL)
		}
		entry := map[string]interface{}{
			"content":     d.Text,
			"title":       d.Title,
			"source_url":  d.SourceURL,
			"authority":   string(d.Authority),
			"record_type": d.RecordType,
		}
		if !d.LastVerified.IsZero() {
			entry["last_verified"] = d.LastVerified.Format(time.RFC3339)
		}
		if err := b.index.Index(d.ID, entry); err != nil {
			return fmt.Errorf("failed to index document %q: %w", d.ID, err)
		}
	}
	return nil
}

func (b *BleveIndex) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := b.index.Delete(id); err != nil {
			xlog.Warn("Failed to delete document from bleve", "id", id, "error", err)
		}
	}
	return nil
}

func (b *BleveIndex) Reset(ctx context.Context) error {
	count, err := b.index.DocCount()
	if err != nil {
		return err
	}
	req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	req.Size = int(count)
	res, err := b.index.Search(req)
	if err != nil {
		return err
	}
	for _, hit := range res.Hits {
		if err := b.index.Delete(hit.ID); err != nil {
			return err
		}
	}
	return nil
}

func (b *BleveIndex) Count() int {
	count, err := b.index.DocCount()
	if err != nil {
		return 0
	}
	return int(count)
}

func (b *BleveIndex) Query(ctx context.Context, q string, limit int) ([]types.Hit, error) {
	match := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequest(match)
	req.Size = limit
	req.IncludeLocations = false

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]types.Hit, 0, len(res.Hits))
	for i, hit := range res.Hits {
		hits = append(hits, types.Hit{DocID: hit.ID, Rank: i + 1, Score: hit.Score})
	}
	return hits, nil
}

func (b *BleveIndex) Get(ctx context.Context, id string) (types.Document, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Fields = []string{"*"}

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return types.Document{}, err
	}
	if len(res.Hits) == 0 {
		return types.Document{}, fmt.Errorf("document %q not found", id)
	}

	fields := res.Hits[0].Fields
	doc := types.Document{
		ID:         id,
		Text:       stringField(fields, "content"),
		Title:      stringField(fields, "title"),
		SourceURL:  stringField(fields, "source_url"),
		Authority:  types.AuthorityLevel(stringField(fields, "authority")),
		RecordType: stringField(fields, "record_type"),
	}
	if raw := stringField(fields, "last_verified"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			doc.LastVerified = t
		}
	}
	if doc.Authority == "" {
		doc.Authority = types.AuthorityFromURL(doc.SourceURL)
	}
	return doc, nil
}

func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
