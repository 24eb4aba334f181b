// Package testutil holds shared helpers for repo integration tests. The tests
// run against a real Postgres pointed at by TEST_POSTGRES_DSN and are skipped
// when it is unset.
package testutil

import (
	"os"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}

// DB opens a gorm connection to TEST_POSTGRES_DSN and migrates the content
// schema. Skips the test when the DSN is not set.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		t.Fatalf("create uuid extension: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Professional{},
		&types.Service{},
		&types.Testimonial{},
		&types.AboutFeature{},
		&types.FAQ{},
		&types.Insurer{},
		&types.BlogPost{},
		&types.AppointmentRequest{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Tx returns a transaction that is rolled back when the test finishes, so
// tests never leave rows behind in the shared database.
func Tx(t *testing.T, db *gorm.DB) *gorm.DB {
	t.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}
