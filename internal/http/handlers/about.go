package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type AboutHandler struct {
	aboutService services.AboutService
}

func NewAboutHandler(aboutService services.AboutService) *AboutHandler {
	return &AboutHandler{aboutService: aboutService}
}

// GET /api/about-features
func (ah *AboutHandler) List(c *gin.Context) {
	rows, err := ah.aboutService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"about_features": rows})
}

// POST /api/admin/about-features
func (ah *AboutHandler) Create(c *gin.Context) {
	var input services.CreateAboutFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ah.aboutService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"about_feature": row})
}

// PATCH /api/admin/about-features/:id
func (ah *AboutHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ah.aboutService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"about_feature": row})
}

// DELETE /api/admin/about-features/:id
func (ah *AboutHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ah.aboutService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/about-features/:id/move
func (ah *AboutHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dir, ok := parseMoveDirection(c)
	if !ok {
		return
	}
	if err := ah.aboutService.Move(c.Request.Context(), id, dir); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
