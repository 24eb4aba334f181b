// Package blogsync mirrors published posts from the external CMS into the
// local blog_post table so the public API serves them without a CMS round
// trip.
package blogsync

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/cms"
	"github.com/yungbote/clinicsite-backend/internal/platform/envutil"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

const pageSize = 50

type Syncer struct {
	db        *gorm.DB
	log       *logger.Logger
	cmsClient cms.Client
	repo      repos.BlogPostRepo
	interval  time.Duration
	fetchers  int
}

func NewSyncer(db *gorm.DB, baseLog *logger.Logger, cmsClient cms.Client, repo repos.BlogPostRepo) *Syncer {
	intervalMin := envutil.Int("BLOG_SYNC_INTERVAL_MINUTES", 15)
	fetchers := envutil.Int("BLOG_SYNC_FETCHERS", 4)
	if fetchers < 1 {
		fetchers = 1
	}
	return &Syncer{
		db:        db,
		log:       baseLog.With("component", "BlogSyncer"),
		cmsClient: cmsClient,
		repo:      repo,
		interval:  time.Duration(intervalMin) * time.Minute,
		fetchers:  fetchers,
	}
}

// Start runs RunOnce immediately and then on the configured interval until the
// context is cancelled.
func (s *Syncer) Start(ctx context.Context) {
	go func() {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("Initial blog sync failed", "error", err.Error())
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RunOnce(ctx); err != nil {
					s.log.Warn("Blog sync failed", "error", err.Error())
				}
			}
		}
	}()
}

// RunOnce fetches every published post from the CMS and upserts it locally.
// Pages after the first are fetched concurrently with a bounded group; upserts
// stay sequential so a single page failure aborts cleanly.
func (s *Syncer) RunOnce(ctx context.Context) error {
	started := time.Now()

	first, total, err := s.cmsClient.ListPosts(ctx, 1, pageSize)
	if err != nil {
		return err
	}

	pages := 1
	if total > pageSize {
		pages = (total + pageSize - 1) / pageSize
	}

	all := make([][]cms.Post, pages)
	all[0] = first

	if pages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.fetchers)
		for page := 2; page <= pages; page++ {
			g.Go(func() error {
				posts, _, err := s.cmsClient.ListPosts(gctx, page, pageSize)
				if err != nil {
					return err
				}
				all[page-1] = posts
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	synced := 0
	now := time.Now().UTC()
	for _, pagePosts := range all {
		for i := range pagePosts {
			if err := s.upsert(ctx, &pagePosts[i], now); err != nil {
				s.log.Warn("Failed to upsert mirrored post",
					"external_id", pagePosts[i].ID, "slug", pagePosts[i].Slug, "error", err.Error())
				continue
			}
			synced++
		}
	}

	s.log.Info("Blog sync complete",
		"total", total,
		"synced", synced,
		"pages", pages,
		"elapsed", time.Since(started).String(),
	)
	return nil
}

func (s *Syncer) upsert(ctx context.Context, post *cms.Post, syncedAt time.Time) error {
	externalID := post.ID
	slug := post.Slug
	if slug == "" {
		slug = services.Slugify(post.Title)
	}

	var tags datatypes.JSON
	if len(post.Tags) > 0 {
		raw, err := tagsJSON(post.Tags)
		if err != nil {
			return err
		}
		tags = raw
	}

	_, err := s.repo.UpsertByExternalID(ctx, nil, &types.BlogPost{
		ExternalID:  &externalID,
		Slug:        slug,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Body:        post.Body,
		CoverURL:    post.CoverURL,
		Tags:        tags,
		PublishedAt: post.PublishedAt,
		SyncedAt:    &syncedAt,
	})
	return err
}
