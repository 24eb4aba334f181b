package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type ProfessionalHandler struct {
	professionalService services.ProfessionalService
}

func NewProfessionalHandler(professionalService services.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionalService: professionalService}
}

// GET /api/professionals
func (ph *ProfessionalHandler) List(c *gin.Context) {
	rows, err := ph.professionalService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professionals": rows})
}

// GET /api/professionals/:id
func (ph *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	row, err := ph.professionalService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professional": row})
}

// POST /api/admin/professionals
func (ph *ProfessionalHandler) Create(c *gin.Context) {
	var input services.CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ph.professionalService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"professional": row})
}

// PATCH /api/admin/professionals/:id
func (ph *ProfessionalHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ph.professionalService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professional": row})
}

// DELETE /api/admin/professionals/:id
func (ph *ProfessionalHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ph.professionalService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/professionals/:id/move
// body: { "direction": "up" | "down" }
func (ph *ProfessionalHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dir, ok := parseMoveDirection(c)
	if !ok {
		return
	}
	if err := ph.professionalService.Move(c.Request.Context(), id, dir); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/professionals/:id/photo
// multipart form, field "file"
func (ph *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, ok := readUploadedFile(c, "file")
	if !ok {
		return
	}
	row, err := ph.professionalService.UploadPhoto(c.Request.Context(), id, raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professional": row})
}
