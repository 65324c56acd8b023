package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Embedder is the provider contract shared by every client in this package.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Named embedders report the model behind their vectors so cached entries of
// different models never mix.
type Named interface {
	ModelName() string
}

// CachedEmbedder is a read-through redis cache in front of another embedder.
// Redis failures are logged and fall through to the wrapped embedder.
type CachedEmbedder struct {
	next  Embedder
	rdb   redis.Cmdable
	ttl   time.Duration
	model string
	log   *logrus.Logger
}

func NewCachedEmbedder(next Embedder, rdb redis.Cmdable, ttl time.Duration, log *logrus.Logger) *CachedEmbedder {
	model := fmt.Sprintf("%T", next)
	if n, ok := next.(Named); ok {
		model = n.ModelName()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedEmbedder{
		next:  next,
		rdb:   rdb,
		ttl:   ttl,
		model: model,
		log:   log,
	}
}

func EmbeddingCacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "embedding:" + hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := EmbeddingCacheKey(c.model, text)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vec []float32
		if jerr := json.Unmarshal(raw, &vec); jerr == nil && len(vec) > 0 {
			return vec, nil
		}
		c.log.WithField("key", key).Warn("discarding unreadable cached embedding")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).Warn("embedding cache read failed")
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(vec); jerr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.log.WithError(serr).Warn("embedding cache write failed")
		}
	}
	return vec, nil
}

func (c *CachedEmbedder) ModelName() string {
	return c.model
}

// Close releases the wrapped embedder when it holds a connection.
func (c *CachedEmbedder) Close() error {
	if cl, ok := c.next.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
