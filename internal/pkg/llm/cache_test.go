package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text)), 0.5}, nil
}

func (c *countingEmbedder) ModelName() string { return "counting" }

func TestCachedEmbedder(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	log, _ := test.NewNullLogger()
	next := &countingEmbedder{}
	c := NewCachedEmbedder(next, rdb, time.Hour, log)

	first, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	second, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if next.calls != 1 {
		t.Errorf("wrapped embedder calls = %d, want 1", next.calls)
	}
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("cached vector %v differs from original %v", second, first)
	}

	key := EmbeddingCacheKey("counting", "hello")
	if !mr.Exists(key) {
		t.Fatalf("key %s not stored", key)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	if _, err := c.Embed(context.Background(), "world"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if next.calls != 2 {
		t.Errorf("wrapped embedder calls = %d, want 2", next.calls)
	}
}

func TestCachedEmbedderFallsThroughWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	log, _ := test.NewNullLogger()
	next := &countingEmbedder{}
	c := NewCachedEmbedder(next, rdb, time.Minute, log)

	vec, err := c.Embed(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != 2 || next.calls != 1 {
		t.Errorf("Embed() = %v with %d calls", vec, next.calls)
	}
}

func TestCachedEmbedderDoesNotCacheErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	log, _ := test.NewNullLogger()
	boom := errors.New("quota exceeded")
	c := NewCachedEmbedder(&countingEmbedder{err: boom}, rdb, time.Minute, log)

	if _, err := c.Embed(context.Background(), "abc"); !errors.Is(err, boom) {
		t.Fatalf("Embed() error = %v, want %v", err, boom)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}

func TestEmbeddingCacheKeySeparatesModels(t *testing.T) {
	if EmbeddingCacheKey("a", "text") == EmbeddingCacheKey("b", "text") {
		t.Error("cache keys for different models should differ")
	}
}
