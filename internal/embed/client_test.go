package embed

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/groupg/causalstats/internal/model"
)

// fakeEmbedder returns a one-dimensional vector per text and counts calls
type fakeEmbedder struct {
	calls int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	atomic.AddInt32(&f.calls, 1)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text))}
	}
	return out, nil
}

func testConfig(batch int) model.EmbeddingConfig {
	cfg := model.DefaultConfig().Embedding
	cfg.BatchSize = batch
	cfg.RequestsPerSecond = 1000
	return cfg
}

func TestEmbedAll_OrderPreserved(t *testing.T) {
	client := NewClient(&fakeEmbedder{}, testConfig(2), 2)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := client.EmbedAll(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedAll: %v", err)
	}

	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors for %d texts", len(vectors), len(texts))
	}
	for i, text := range texts {
		if vectors[i][0] != float32(len(text)) {
			t.Errorf("vector %d = %v, want length of %q", i, vectors[i], text)
		}
	}
}

func TestEmbedAll_CacheAvoidsRepeatCalls(t *testing.T) {
	fake := &fakeEmbedder{}
	client := NewClient(fake, testConfig(10), 1)

	texts := []string{"alpha", "beta"}
	if _, err := client.EmbedAll(context.Background(), texts); err != nil {
		t.Fatalf("first EmbedAll: %v", err)
	}
	first := atomic.LoadInt32(&fake.calls)

	if _, err := client.EmbedAll(context.Background(), texts); err != nil {
		t.Fatalf("second EmbedAll: %v", err)
	}
	if got := atomic.LoadInt32(&fake.calls); got != first {
		t.Errorf("expected cached vectors to avoid API calls, calls went %d -> %d", first, got)
	}
}

func TestEmbedAll_Empty(t *testing.T) {
	client := NewClient(&fakeEmbedder{}, testConfig(10), 1)

	vectors, err := client.EmbedAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedAll: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}

func TestEmbedAll_CancelledContextFails(t *testing.T) {
	client := NewClient(&fakeEmbedder{}, testConfig(1), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled run may drop queued batches before any worker picks them
	// up; that must surface as an error, never as a nil-filled success.
	vectors, err := client.EmbedAll(ctx, []string{"a", "b", "c", "d"})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if vectors != nil {
		t.Errorf("expected no vectors on failure, got %v", vectors)
	}
}

func TestCosine(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	c := []float32{0, 1}
	d := []float32{-1, 0}

	if got := Cosine(a, b); got < 0.999 {
		t.Errorf("identical vectors: %f", got)
	}
	if got := Cosine(a, c); got > 0.001 || got < -0.001 {
		t.Errorf("orthogonal vectors: %f", got)
	}
	if got := Cosine(a, d); got > -0.999 {
		t.Errorf("opposite vectors: %f", got)
	}
	if got := Cosine(a, []float32{1}); got != 0 {
		t.Errorf("mismatched lengths should yield 0, got %f", got)
	}
}

func TestSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{1, 0},
		{0, 1},
	}

	stats := Similarity(vectors, 0.95)

	if stats.Pairs != 3 {
		t.Errorf("pairs = %d, want 3", stats.Pairs)
	}
	if stats.HighPairs != 1 {
		t.Errorf("high pairs = %d, want 1 near-duplicate", stats.HighPairs)
	}
	if stats.Max < 0.999 {
		t.Errorf("max = %f", stats.Max)
	}
	if stats.Min > 0.001 {
		t.Errorf("min = %f", stats.Min)
	}
}

func TestSimilarity_TooFewVectors(t *testing.T) {
	if stats := Similarity([][]float32{{1}}, 0.9); stats.Pairs != 0 {
		t.Errorf("expected zero pairs, got %d", stats.Pairs)
	}
}
