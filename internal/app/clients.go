package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/clinicsite-backend/internal/clients/redis"
	"github.com/yungbote/clinicsite-backend/internal/platform/cms"
	"github.com/yungbote/clinicsite-backend/internal/platform/gcp"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/platform/sendgrid"
)

type Clients struct {
	ContentCache redis.ContentCache
	GcpBucket    gcp.BucketService
	Sendgrid     sendgrid.Client
	CMS          cms.Client
}

// wireClients builds the optional external clients. Each one is skipped with a
// warning when its env vars are absent so the site can run against Postgres
// alone; services treat the nil client as "feature off".
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var cache redis.ContentCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redis.NewContentCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init content cache: %w", err)
		}
		cache = c
	} else {
		log.Warn("REDIS_ADDR not set, content cache disabled")
	}

	// Gcs
	var bucket gcp.BucketService
	if strings.TrimSpace(os.Getenv("PORTRAIT_GCS_BUCKET_NAME")) != "" {
		b, err := gcp.NewBucketService(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init bucket client: %w", err)
		}
		bucket = b
	} else {
		log.Warn("PORTRAIT_GCS_BUCKET_NAME not set, image uploads disabled")
	}

	// Sendgrid
	var mail sendgrid.Client
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		m, err := sendgrid.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
		}
		mail = m
	} else {
		log.Warn("SENDGRID_API_KEY not set, appointment notifications disabled")
	}

	// External CMS
	var cmsClient cms.Client
	if strings.TrimSpace(os.Getenv("CMS_BASE_URL")) != "" {
		c, err := cms.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init cms client: %w", err)
		}
		cmsClient = c
	} else {
		log.Warn("CMS_BASE_URL not set, blog sync disabled")
	}

	return Clients{
		ContentCache: cache,
		GcpBucket:    bucket,
		Sendgrid:     mail,
		CMS:          cmsClient,
	}, nil
}
