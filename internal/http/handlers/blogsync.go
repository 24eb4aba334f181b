package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

// BlogSyncRunner is the slice of the sync job the admin trigger needs.
type BlogSyncRunner interface {
	RunOnce(ctx context.Context) error
}

type BlogSyncHandler struct {
	log    *logger.Logger
	runner BlogSyncRunner
}

// NewBlogSyncHandler wires the manual sync trigger. runner is nil when no CMS
// is configured; the endpoint then answers 503.
func NewBlogSyncHandler(log *logger.Logger, runner BlogSyncRunner) *BlogSyncHandler {
	return &BlogSyncHandler{log: log.With("handler", "BlogSyncHandler"), runner: runner}
}

// POST /api/admin/blog/sync
func (bsh *BlogSyncHandler) Trigger(c *gin.Context) {
	if bsh.runner == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "sync_unavailable", errors.New("cms client not configured"))
		return
	}
	if err := bsh.runner.RunOnce(c.Request.Context()); err != nil {
		bsh.log.Warn("Manual blog sync failed", "error", err.Error())
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
