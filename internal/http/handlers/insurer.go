package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type InsurerHandler struct {
	insurerService services.InsurerService
}

func NewInsurerHandler(insurerService services.InsurerService) *InsurerHandler {
	return &InsurerHandler{insurerService: insurerService}
}

// GET /api/insurers
func (ih *InsurerHandler) List(c *gin.Context) {
	rows, err := ih.insurerService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insurers": rows})
}

// POST /api/admin/insurers
func (ih *InsurerHandler) Create(c *gin.Context) {
	var input services.CreateInsurerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ih.insurerService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"insurer": row})
}

// PATCH /api/admin/insurers/:id
func (ih *InsurerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ih.insurerService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insurer": row})
}

// DELETE /api/admin/insurers/:id
func (ih *InsurerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ih.insurerService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/insurers/:id/move
func (ih *InsurerHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dir, ok := parseMoveDirection(c)
	if !ok {
		return
	}
	if err := ih.insurerService.Move(c.Request.Context(), id, dir); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/insurers/:id/logo
func (ih *InsurerHandler) UploadLogo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, ok := readUploadedFile(c, "file")
	if !ok {
		return
	}
	row, err := ih.insurerService.UploadLogo(c.Request.Context(), id, raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insurer": row})
}
