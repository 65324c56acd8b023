package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini"
	ProviderSocket      = "socket"
)

// NewEmbedder builds the provider named by embedding.provider. When rdb is
// non-nil and embedding.cache.enabled is set the provider is wrapped in a
// redis cache.
func NewEmbedder(ctx context.Context, config *viper.Viper, rdb *redis.Client, log *logrus.Logger) (Embedder, error) {
	provider := strings.ToLower(strings.TrimSpace(config.GetString("embedding.provider")))
	if provider == "" {
		provider = ProviderHuggingFace
	}

	var (
		e   Embedder
		err error
	)
	switch provider {
	case ProviderHuggingFace:
		e = NewHuggingFaceEmbedder(
			config.GetString("embedding.huggingface.api_key"),
			config.GetString("embedding.huggingface.url"),
			config.GetDuration("embedding.huggingface.timeout"),
		)
	case ProviderOpenAI:
		e = NewOpenAIEmbedder(
			config.GetString("embedding.openai.api_key"),
			config.GetString("embedding.openai.model"),
			config.GetString("embedding.openai.base_url"),
		)
	case ProviderGemini:
		e, err = NewGeminiEmbedder(ctx,
			config.GetString("embedding.gemini.api_key"),
			config.GetString("embedding.gemini.model"),
		)
	case ProviderSocket:
		e = NewSocketEmbedder(
			config.GetString("embedding.socket.url"),
			config.GetDuration("embedding.socket.timeout"),
			log,
		)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (allowed: huggingface, openai, gemini, socket)", provider)
	}
	if err != nil {
		return nil, err
	}

	if rdb != nil && config.GetBool("embedding.cache.enabled") {
		e = NewCachedEmbedder(e, rdb, config.GetDuration("embedding.cache.ttl"), log)
	}

	log.WithField("provider", provider).Info("embedding provider configured")
	return e, nil
}
