// Package embed is the boundary to the opaque vector-producing service.
// The core never interprets embeddings beyond pairwise similarity; chart
// rendering and dimensionality reduction live in a separate collaborator
// that consumes the same vectors.
package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sashabaranov/go-openai"

	"github.com/groupg/causalstats/internal/model"
	"github.com/groupg/causalstats/internal/worker"
)

// rate-limiter key for the embedding service
const serviceKey = "embeddings"

// Embedder produces one vector per input text
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEmbedder implements Embedder against the OpenAI embeddings API
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder from the embedding configuration
func NewOpenAIEmbedder(cfg model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

// Embed requests vectors for a batch of texts
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings response has %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings response index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Client batches, rate-limits, and memoizes embedding requests for the
// duration of one run.
type Client struct {
	embedder  Embedder
	cache     *gocache.Cache
	limiter   *worker.Limiter
	batchSize int
	workers   int
}

// NewClient wraps an embedder with batching, caching, and rate limiting
func NewClient(embedder Embedder, cfg model.EmbeddingConfig, workers int) *Client {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}
	if workers <= 0 {
		workers = 1
	}

	return &Client{
		embedder:  embedder,
		cache:     gocache.New(gocache.NoExpiration, 0),
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		batchSize: batch,
		workers:   workers,
	}
}

// cacheKey hashes a text into a stable cache key
func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "causalstats:v1:" + hex.EncodeToString(hash[:])
}

// batchJob embeds one chunk of uncached texts
type batchJob struct {
	client *Client
	start  int
	texts  []string
}

// batchResult carries the vectors for one chunk
type batchResult struct {
	start   int
	vectors [][]float32
	err     error
}

// GetError returns the job error, if any
func (r *batchResult) GetError() error {
	return r.err
}

// Execute waits for rate-limit clearance and embeds the chunk
func (j *batchJob) Execute(ctx context.Context) worker.Result {
	if err := j.client.limiter.Wait(ctx, serviceKey); err != nil {
		return &batchResult{start: j.start, err: err}
	}

	vectors, err := j.client.embedder.Embed(ctx, j.texts)
	if err != nil {
		return &batchResult{start: j.start, err: fmt.Errorf("embed batch at %d: %w", j.start, err)}
	}
	return &batchResult{start: j.start, vectors: vectors}
}

// EmbedAll returns one vector per text, in input order. Cached texts are
// served without an API call; the rest are chunked and embedded through
// the worker pool.
func (c *Client) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missing []int
	for i, text := range texts {
		if v, found := c.cache.Get(cacheKey(text)); found {
			vectors[i] = v.([]float32)
			continue
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return vectors, nil
	}

	pending := make([]string, len(missing))
	for i, idx := range missing {
		pending[i] = texts[idx]
	}

	var jobs []worker.Job
	for start := 0; start < len(pending); start += c.batchSize {
		end := start + c.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		jobs = append(jobs, &batchJob{client: c, start: start, texts: pending[start:end]})
	}

	results := worker.NewPoolContext(ctx, c.workers).Run(jobs)
	// A cancelled pool drops queued jobs without producing results, so a
	// short result list must not pass as success.
	if len(results) != len(jobs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("embedding pool returned %d results for %d batches", len(results), len(jobs))
	}
	for _, res := range results {
		if err := res.GetError(); err != nil {
			return nil, err
		}
		batch := res.(*batchResult)
		for i, vec := range batch.vectors {
			idx := missing[batch.start+i]
			vectors[idx] = vec
			c.cache.Set(cacheKey(texts[idx]), vec, gocache.NoExpiration)
		}
	}

	return vectors, nil
}
