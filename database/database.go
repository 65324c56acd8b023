package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database named by database.driver: postgres (default) or
// sqlite for local runs, where database.dbname is the file path.
func New(config *viper.Viper, log *logrus.Logger) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             config.GetDuration("database.slow_threshold"),
			LogLevel:                  gormLogLevel(config.GetString("database.log_level")),
			IgnoreRecordNotFoundError: true,
		}),
		// unique violations come back as gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch strings.ToLower(config.GetString("database.driver")) {
	case "sqlite":
		dialector = sqlite.Open(config.GetString("database.dbname"))
	case "", "postgres":
		dialector = postgres.Open(postgresDSN(config))
	default:
		panic(fmt.Errorf("unknown database driver %q", config.GetString("database.driver")))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Errorf("failed to get database handle: %w", err))
	}
	if n := config.GetInt("database.max_open_conns"); n > 0 {
		sqlDB.SetMaxOpenConns(n)
	}
	if n := config.GetInt("database.max_idle_conns"); n > 0 {
		sqlDB.SetMaxIdleConns(n)
	}
	if d := config.GetDuration("database.conn_max_lifetime"); d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	}

	return db
}

func postgresDSN(config *viper.Viper) string {
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		config.GetString("database.host"),
		config.GetString("database.username"),
		config.GetString("database.password"),
		config.GetString("database.dbname"),
		config.GetInt("database.port"),
		sslmode,
		timezone,
	)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
