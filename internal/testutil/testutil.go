// Package testutil holds fixtures shared by the repository, usecase and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/evandrarf/microlearn-be/database"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory sqlite database that lives as long as t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// QuietLogger discards output; the hook keeps entries for assertions.
func QuietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// StaticEmbedder returns fixed vectors and fails for texts it does not know.
type StaticEmbedder struct {
	Vectors map[string][]float32
	Calls   atomic.Int64
}

func (s *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.Calls.Add(1)
	v, ok := s.Vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}
