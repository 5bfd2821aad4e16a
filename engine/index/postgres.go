package index

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// PostgresIndex serves both retrieval sides from one database: tsvector
// full-text ranking for the lexical side and pgvector cosine distance for
// the vector side. One adapter instance backs Lexical, Vector,
// DocumentStore and Writer at once.
type PostgresIndex struct {
	pool            *pgxpool.Pool
	tableName       string
	client          *openai.Client
	embeddingsModel string
	embeddingDims   int
}

// Lexical returns the tsvector side of the index.
func (p *PostgresIndex) Lexical() Lexical { return postgresLexical{p} }

// Vector returns the pgvector side of the index.
func (p *PostgresIndex) Vector() Vector { return postgresVector{p} }

func NewPostgresIndex(collectionName, databaseURL string, openaiClient *openai.Client, embeddingsModel string) (*PostgresIndex, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required for the postgres index")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	testEmbedding, err := embedText(context.Background(), openaiClient, embeddingsModel, "test")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to get test embedding: %w", err)
	}

	pg := &PostgresIndex{
		pool:            pool,
		tableName:       sanitizeTableName(collectionName),
		client:          openaiClient,
		embeddingsModel: embeddingsModel,
		embeddingDims:   len(testEmbedding),
	}

	if err := pg.setupDatabase(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return pg, nil
}

func sanitizeTableName(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 0 && (name[0] < 'a' || name[0] > 'z') && (name[0] < 'A' || name[0] > 'Z') {
		name = "col_" + name
	}
	return "documents_" + name
}

func embedText(ctx context.Context, client *openai.Client, model, text string) ([]float32, error) {
	resp, err := client.CreateEmbeddings(ctx,
		openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(model),
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}
	return resp.Data[0].Embedding, nil
}

func (p *PostgresIndex) setupDatabase() error {
	ctx := context.Background()

	_, err := p.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to enable vector extension: %w", err)
	}

	_, err = p.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT,
			content TEXT NOT NULL,
			source_url TEXT,
			authority TEXT,
			record_type TEXT,
			last_verified TIMESTAMPTZ,
			search_vector TSVECTOR GENERATED ALWAYS AS (
				to_tsvector('english', COALESCE(title, '') || ' ' || content)
			) STORED,
			embedding VECTOR(%d)
		)
	`, p.tableName, p.embeddingDims))
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	_, err = p.pool.Exec(ctx, fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_search ON %s USING GIN(search_vector)
	`, p.tableName, p.tableName))
	if err != nil {
		xlog.Warn("Failed to create GIN index", "error", err)
	}

	_, err = p.pool.Exec(ctx, fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_embedding ON %s
		USING hnsw(embedding vector_cosine_ops)
	`, p.tableName, p.tableName))
	if err != nil {
		xlog.Warn("Failed to create HNSW index", "error", err)
	}

	return nil
}

func (p *PostgresIndex) Index(ctx context.Context, docs ...types.Document) error {
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("document without id")
		}
		if d.Authority == "" {
			d.Authority = types.AuthorityFromURL(d.SourceURL)
		}

		embedding, err := embedText(ctx, p.client, p.embeddingsModel, d.Text)
		if err != nil {
			return fmt.Errorf("failed to embed document %q: %w", d.ID, err)
		}

		var lastVerified *time.Time
		if !d.LastVerified.IsZero() {
			lastVerified = &d.LastVerified
		}

		_, err = p.pool.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, title, content, source_url, authority, record_type, last_verified, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				content = EXCLUDED.content,
				source_url = EXCLUDED.source_url,
				authority = EXCLUDED.authority,
				record_type = EXCLUDED.record_type,
				last_verified = EXCLUDED.last_verified,
				embedding = EXCLUDED.embedding
		`, p.tableName),
			d.ID, d.Title, d.Text, d.SourceURL, string(d.Authority), d.RecordType, lastVerified, vectorLiteral(embedding))
		if err != nil {
			return fmt.Errorf("failed to insert document %q: %w", d.ID, err)
		}
	}
	return nil
}

func (p *PostgresIndex) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if _, err := p.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", p.tableName), id); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresIndex) Reset(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s", p.tableName))
	return err
}

func (p *PostgresIndex) Count() int {
	var count int
	if err := p.pool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", p.tableName)).Scan(&count); err != nil {
		return 0
	}
	return count
}

func (p *PostgresIndex) Close() {
	p.pool.Close()
}

type postgresLexical struct{ p *PostgresIndex }

func (l postgresLexical) Query(ctx context.Context, q string, limit int) ([]types.Hit, error) {
	p := l.p
	rows, err := p.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, ts_rank(search_vector, websearch_to_tsquery('english', $1)) AS rank
		FROM %s
		WHERE search_vector @@ websearch_to_tsquery('english', $1)
		ORDER BY rank DESC, id ASC
		LIMIT $2
	`, p.tableName), q, limit)
	if err != nil {
		return nil, fmt.Errorf("lexical query failed: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

type postgresVector struct{ p *PostgresIndex }

func (v postgresVector) Query(ctx context.Context, q string, limit int) ([]types.Hit, error) {
	p := v.p
	embedding, err := embedText(ctx, p.client, p.embeddingsModel, q)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := p.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, 1 - (embedding <=> $1::vector) AS similarity
		FROM %s
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1::vector ASC, id ASC
		LIMIT $2
	`, p.tableName), vectorLiteral(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

func (p *PostgresIndex) Get(ctx context.Context, id string) (types.Document, error) {
	var doc types.Document
	var authority string
	var lastVerified *time.Time

	err := p.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, title, content, COALESCE(source_url, ''), COALESCE(authority, ''), COALESCE(record_type, ''), last_verified
		FROM %s WHERE id = $1
	`, p.tableName), id).Scan(&doc.ID, &doc.Title, &doc.Text, &doc.SourceURL, &authority, &doc.RecordType, &lastVerified)
	if err != nil {
		return types.Document{}, fmt.Errorf("document %q not found: %w", id, err)
	}

	doc.Authority = types.AuthorityLevel(authority)
	if doc.Authority == "" {
		doc.Authority = types.AuthorityFromURL(doc.SourceURL)
	}
	if lastVerified != nil {
		doc.LastVerified = *lastVerified
	}
	return doc, nil
}

type hitRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanHits(rows hitRows) ([]types.Hit, error) {
	hits := []types.Hit{}
	rank := 0
	for rows.Next() {
		rank++
		h := types.Hit{Rank: rank}
		if err := rows.Scan(&h.DocID, &h.Score); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func vectorLiteral(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
