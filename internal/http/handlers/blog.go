package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// GET /api/blog
func (bh *BlogHandler) ListPublished(c *gin.Context) {
	rows, err := bh.blogService.ListPublished(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": rows})
}

// GET /api/blog/:slug
func (bh *BlogHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_slug", nil)
		return
	}
	post, err := bh.blogService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}

// GET /api/admin/blog
func (bh *BlogHandler) ListAll(c *gin.Context) {
	rows, err := bh.blogService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": rows})
}

// POST /api/admin/blog
func (bh *BlogHandler) Create(c *gin.Context) {
	var input services.CreateBlogPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	post, err := bh.blogService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"post": post})
}

// PATCH /api/admin/blog/:id
func (bh *BlogHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	post, err := bh.blogService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}

// DELETE /api/admin/blog/:id
func (bh *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := bh.blogService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/blog/:id/cover
func (bh *BlogHandler) UploadCover(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, ok := readUploadedFile(c, "file")
	if !ok {
		return
	}
	post, err := bh.blogService.UploadCover(c.Request.Context(), id, raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}
