package engine

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the answer pipeline. The policy
// numbers (coverage threshold, authority boost) are deliberately
// configuration, not constants.
type Config struct {
	// MaxQueryLength rejects oversized queries before retrieval.
	MaxQueryLength int

	// RetrievalLimit applies per index side, before fusion.
	RetrievalLimit int
	// RetrievalTimeout bounds each index side independently.
	RetrievalTimeout time.Duration

	// RRFK is the reciprocal rank fusion constant.
	RRFK int
	// TopK bounds the fused candidate list.
	TopK int
	// RelevanceFloor rejects weakly fused candidates (normalized scale,
	// see fusion.Ranker).
	RelevanceFloor float64
	// AuthorityBoost multiplies fused scores of high-authority sources.
	AuthorityBoost float64

	// CoverageThreshold is the cite-or-abstain bar.
	CoverageThreshold float64

	// GenerationTimeout and GenerationRetryTimeout bound the external
	// formatter call and its single retry.
	GenerationTimeout      time.Duration
	GenerationRetryTimeout time.Duration

	// CacheTTL controls the recent-answer cache; zero disables it.
	CacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxQueryLength:         512,
		RetrievalLimit:         50,
		RetrievalTimeout:       2 * time.Second,
		RRFK:                   60,
		TopK:                   8,
		RelevanceFloor:         0.3,
		AuthorityBoost:         1.5,
		CoverageThreshold:      0.9,
		GenerationTimeout:      5 * time.Second,
		GenerationRetryTimeout: 3 * time.Second,
		CacheTTL:               time.Minute,
	}
}

// LoadConfig reads overrides from the environment with the ENGINE_ prefix
// (ENGINE_COVERAGE_THRESHOLD, ENGINE_AUTHORITY_BOOST, ...).
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("engine")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("max_query_length", def.MaxQueryLength)
	v.SetDefault("retrieval_limit", def.RetrievalLimit)
	v.SetDefault("retrieval_timeout", def.RetrievalTimeout)
	v.SetDefault("rrf_k", def.RRFK)
	v.SetDefault("top_k", def.TopK)
	v.SetDefault("relevance_floor", def.RelevanceFloor)
	v.SetDefault("authority_boost", def.AuthorityBoost)
	v.SetDefault("coverage_threshold", def.CoverageThreshold)
	v.SetDefault("generation_timeout", def.GenerationTimeout)
	v.SetDefault("generation_retry_timeout", def.GenerationRetryTimeout)
	v.SetDefault("cache_ttl", def.CacheTTL)

	return Config{
		MaxQueryLength:         v.GetInt("max_query_length"),
		RetrievalLimit:         v.GetInt("retrieval_limit"),
		RetrievalTimeout:       v.GetDuration("retrieval_timeout"),
		RRFK:                   v.GetInt("rrf_k"),
		TopK:                   v.GetInt("top_k"),
		RelevanceFloor:         v.GetFloat64("relevance_floor"),
		AuthorityBoost:         v.GetFloat64("authority_boost"),
		CoverageThreshold:      v.GetFloat64("coverage_threshold"),
		GenerationTimeout:      v.GetDuration("generation_timeout"),
		GenerationRetryTimeout: v.GetDuration("generation_retry_timeout"),
		CacheTTL:               v.GetDuration("cache_ttl"),
	}
}
