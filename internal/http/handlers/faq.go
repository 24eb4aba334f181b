package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type FAQHandler struct {
	faqService services.FAQService
}

func NewFAQHandler(faqService services.FAQService) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

// GET /api/faqs
func (fh *FAQHandler) List(c *gin.Context) {
	rows, err := fh.faqService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"faqs": rows})
}

// POST /api/admin/faqs
func (fh *FAQHandler) Create(c *gin.Context) {
	var input services.CreateFAQInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := fh.faqService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"faq": row})
}

// PATCH /api/admin/faqs/:id
func (fh *FAQHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := fh.faqService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"faq": row})
}

// DELETE /api/admin/faqs/:id
func (fh *FAQHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := fh.faqService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/faqs/:id/move
func (fh *FAQHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dir, ok := parseMoveDirection(c)
	if !ok {
		return
	}
	if err := fh.faqService.Move(c.Request.Context(), id, dir); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
