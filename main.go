package main

import (
	"os"
	"path/filepath"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/generation"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/handlers"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/index"
)

var (
	listenAddress  = envDefault("LISTEN_ADDRESS", ":8080")
	openAIKey      = os.Getenv("OPENAI_API_KEY")
	openAIBaseURL  = os.Getenv("OPENAI_API_BASE_URL")
	embeddingModel = envDefault("EMBEDDINGS_MODEL", "text-embedding-3-small")
	formatterModel = envDefault("FORMATTER_MODEL", "gpt-4o-mini")
	backend        = envDefault("ENGINE_BACKEND", "memory")
	dataDir        = envDefault("DATA_DIR", "data")
	collectionName = envDefault("COLLECTION_NAME", "advisor")
	databaseURL    = os.Getenv("DATABASE_URL")
)

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cfg := engine.LoadConfig()

	clientConfig := openai.DefaultConfig(openAIKey)
	if openAIBaseURL != "" {
		clientConfig.BaseURL = openAIBaseURL
	}
	openAIClient := openai.NewClientWithConfig(clientConfig)

	var (
		lexical index.Lexical
		vector  index.Vector
		store   index.DocumentStore
		writers []index.Writer
	)

	switch backend {
	case "postgres":
		pg, err := index.NewPostgresIndex(collectionName, databaseURL, openAIClient, embeddingModel)
		if err != nil {
			xlog.Error("Failed to create postgres index", "error", err)
			os.Exit(1)
		}
		lexical, vector, store = pg.Lexical(), pg.Vector(), pg
		writers = []index.Writer{pg}

	case "local":
		bleveIndex, err := index.NewBleveIndex(filepath.Join(dataDir, "bleve", collectionName), "en")
		if err != nil {
			xlog.Error("Failed to create bleve index", "error", err)
			os.Exit(1)
		}
		chromemIndex, err := index.NewChromemIndex(collectionName, filepath.Join(dataDir, "chromem"), openAIClient, embeddingModel)
		if err != nil {
			xlog.Error("Failed to create chromem index", "error", err)
			os.Exit(1)
		}
		lexical, vector, store = bleveIndex, chromemIndex, bleveIndex
		writers = []index.Writer{bleveIndex, chromemIndex}

	default:
		mem := index.NewMemoryIndex()
		lexical, vector, store = mem.Lexical(), mem.Vector(), mem
		writers = []index.Writer{mem}
	}

	var formatter generation.Formatter
	if openAIKey != "" || openAIBaseURL != "" {
		formatter = generation.NewOpenAIFormatter(openAIClient, formatterModel, cfg.GenerationTimeout, cfg.GenerationRetryTimeout)
	} else {
		xlog.Info("No formatter configured, answers will use the structured rendering")
	}

	eng := engine.New(cfg, lexical, vector, store, handlers.NewRegistry(), formatter)

	xlog.Info("Starting answer API", "address", listenAddress, "backend", backend)
	startAPI(eng, writers, listenAddress)
}
