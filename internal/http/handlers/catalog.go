package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /api/services
func (ch *CatalogHandler) List(c *gin.Context) {
	rows, err := ch.catalogService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"services": rows})
}

// GET /api/services/:id
func (ch *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	row, err := ch.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"service": row})
}

// POST /api/admin/services
func (ch *CatalogHandler) Create(c *gin.Context) {
	var input services.CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ch.catalogService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"service": row})
}

// PATCH /api/admin/services/:id
func (ch *CatalogHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ch.catalogService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"service": row})
}

// DELETE /api/admin/services/:id
func (ch *CatalogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ch.catalogService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/services/:id/move
func (ch *CatalogHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dir, ok := parseMoveDirection(c)
	if !ok {
		return
	}
	if err := ch.catalogService.Move(c.Request.Context(), id, dir); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/services/:id/image
func (ch *CatalogHandler) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, ok := readUploadedFile(c, "file")
	if !ok {
		return
	}
	row, err := ch.catalogService.UploadImage(c.Request.Context(), id, raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"service": row})
}
