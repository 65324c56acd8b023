package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evandrarf/microlearn-be/database"
	"github.com/evandrarf/microlearn-be/internal/config"
	"github.com/evandrarf/microlearn-be/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()

	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig, log)
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := database.Ping(pingCtx, db)
	cancel()
	if err != nil {
		log.Fatalf("Database is not reachable: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations completed successfully")

	// Run seeders
	if err := database.SeedLearningModules(db, log); err != nil {
		log.Fatalf("Failed to seed learning modules: %v", err)
	}
	log.Info("Seeders completed successfully")

	rdb, err := database.NewRedis(ctx, viperConfig, log)
	if err != nil {
		log.Warnf("Redis unavailable, embedding cache disabled: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	if err := config.Bootstrap(&config.BootstrapConfig{
		Ctx:       ctx,
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
		Redis:     rdb,
	}); err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	listenAddr := viperConfig.GetString("api.listen")

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}
}
