package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewRedis returns nil when redis.addr is empty, the service then runs without the embedding cache.
func NewRedis(ctx context.Context, config *viper.Viper, log *logrus.Logger) (*redis.Client, error) {
	addr := config.GetString("redis.addr")
	if addr == "" {
		log.Info("redis.addr not set, embedding cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    config.GetString("redis.password"),
		DB:          config.GetInt("redis.db"),
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.WithFields(logrus.Fields{
		"addr": addr,
		"db":   config.GetInt("redis.db"),
	}).Info("redis connected")
	return rdb, nil
}
