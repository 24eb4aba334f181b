package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/clinicsite-backend/internal/data/db"
	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/jobs/blogsync"
	"github.com/yungbote/clinicsite-backend/internal/platform/cms"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

// One-shot blog sync for cron or manual runs; the API server runs the same
// syncer on a ticker.
func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := pg.DB()

	cmsClient, err := cms.NewFromEnv(log)
	if err != nil {
		log.Error("CMS client init failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncer := blogsync.NewSyncer(theDB, log, cmsClient, repos.NewBlogPostRepo(theDB, log))
	if err := syncer.RunOnce(ctx); err != nil {
		log.Error("Blog sync failed", "error", err)
		os.Exit(1)
	}
	log.Info("Blog sync complete")
}
