package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

func seedTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}

func TestLoadSeedContentDisabledWhenUnset(t *testing.T) {
	t.Setenv("SEED_CONTENT_PATH", "")
	sc, err := LoadSeedContent(seedTestLogger(t))
	if err != nil {
		t.Fatalf("LoadSeedContent: %v", err)
	}
	if sc != nil {
		t.Fatal("expected nil seed content when path unset")
	}
	if got := sc.Professionals(); got != nil {
		t.Fatalf("nil receiver Professionals = %v", got)
	}
}

func TestLoadSeedContentParsesAndOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `professionals:
  - full_name: "B Person"
    title: "Physician"
  - full_name: "A Person"
    title: "Nurse"
services:
  - title: "Checkup"
    summary: "Routine checkup."
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	t.Setenv("SEED_CONTENT_PATH", path)

	sc, err := LoadSeedContent(seedTestLogger(t))
	if err != nil {
		t.Fatalf("LoadSeedContent: %v", err)
	}
	pros := sc.Professionals()
	if len(pros) != 2 {
		t.Fatalf("professionals = %d", len(pros))
	}
	// Seed order follows file order, not alphabetic.
	if pros[0].FullName != "B Person" || pros[0].Order == nil || *pros[0].Order != 1 {
		t.Fatalf("first professional = %+v", pros[0])
	}
	if pros[1].Order == nil || *pros[1].Order != 2 {
		t.Fatalf("second professional order = %v", pros[1].Order)
	}
	svcs := sc.Services()
	if len(svcs) != 1 || svcs[0].Title != "Checkup" {
		t.Fatalf("services = %+v", svcs)
	}
}

func TestLoadSeedContentBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("professionals: {not: [valid"), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	t.Setenv("SEED_CONTENT_PATH", path)

	if _, err := LoadSeedContent(seedTestLogger(t)); err == nil {
		t.Fatal("expected parse error")
	}
}
