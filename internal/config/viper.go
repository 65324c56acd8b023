package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// NewViper loads config.yaml (config.prod.yaml when ENV=production).
// Every key can be overridden from the environment, e.g. APP_DATABASE_HOST.
// A .env file in the working directory is loaded first when present.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	config.SetEnvPrefix("APP")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	setDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "microlearn-be")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
	config.SetDefault("embedding.provider", "huggingface")
	config.SetDefault("embedding.concurrency", 8)
	config.SetDefault("embedding.cache.enabled", true)
	config.SetDefault("embedding.cache.ttl", "24h")
	config.SetDefault("embedding.socket.timeout", "30s")
}
