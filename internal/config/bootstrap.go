package config

import (
	"context"
	"fmt"
	"io"

	"github.com/evandrarf/microlearn-be/internal/delivery/http/handler"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/middleware"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/repository"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/route"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/usecase"
	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
	"github.com/evandrarf/microlearn-be/internal/pkg/llm"
	"github.com/evandrarf/microlearn-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Ctx       context.Context
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Redis     *redis.Client // optional, nil disables the embedding cache
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) error {
	ctx := config.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	engine, err := NewScoringEngine(config.Config)
	if err != nil {
		return err
	}

	embedder, err := llm.NewEmbedder(ctx, config.Config, config.Redis, config.Log)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	if closer, ok := embedder.(io.Closer); ok {
		config.Api.Hooks().OnShutdown(closer.Close)
	}

	embeddingService := embedding.NewService(embedder,
		embedding.WithConcurrency(config.Config.GetInt("embedding.concurrency")),
		embedding.WithLogger(config.Log),
	)

	scoringRepo := repository.NewScoringRepository(config.DB)
	scoringUsecase := usecase.NewScoringUsecase(usecase.ScoringConfig{
		DB:         config.DB,
		Engine:     engine,
		Repository: scoringRepo,
		Log:        config.Log,
	})
	scoringHandler := handler.NewScoringHandler(config.Validator, config.Log, scoringUsecase)

	documentRepo := repository.NewDocumentRepository(config.DB)
	embeddingUsecase := usecase.NewEmbeddingUsecase(usecase.EmbeddingConfig{
		DB:         config.DB,
		Service:    embeddingService,
		Repository: documentRepo,
		Log:        config.Log,
	})
	embeddingHandler := handler.NewEmbeddingHandler(config.Validator, config.Log, embeddingUsecase)

	route.Setup(&route.RouteConfig{
		Api:              config.Api,
		Middleware:       mid,
		ScoringHandler:   scoringHandler,
		EmbeddingHandler: embeddingHandler,
	})

	return nil
}
