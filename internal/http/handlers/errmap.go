package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/ordering"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

const maxUploadBytes = 10 << 20

// respondServiceError maps domain errors onto stable HTTP codes. Boundary and
// in-flight move rejections are conflicts, not server faults; a missing order
// column is surfaced distinctly so operators know to run migrations.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, ordering.ErrAtTop):
		response.RespondError(c, http.StatusConflict, "at_top", err)
	case errors.Is(err, ordering.ErrAtBottom):
		response.RespondError(c, http.StatusConflict, "at_bottom", err)
	case errors.Is(err, ordering.ErrMoveInFlight):
		response.RespondError(c, http.StatusConflict, "move_in_flight", err)
	case errors.Is(err, ordering.ErrNotInList):
		response.RespondError(c, http.StatusNotFound, "not_in_list", err)
	case storeerr.IsNotFound(err):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case storeerr.IsConflict(err):
		response.RespondError(c, http.StatusConflict, "conflict", err)
	case storeerr.IsSchemaFieldMissing(err):
		response.RespondError(c, http.StatusInternalServerError, "schema_migration_required", err)
	case storeerr.KindOf(err) == storeerr.KindTransport:
		response.RespondError(c, http.StatusServiceUnavailable, "storage_unavailable", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func parseMoveDirection(c *gin.Context) (ordering.Direction, bool) {
	var body struct {
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return 0, false
	}
	dir, err := ordering.ParseDirection(body.Direction)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_direction", err)
		return 0, false
	}
	return dir, true
}

func readUploadedFile(c *gin.Context, field string) ([]byte, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return nil, false
	}
	if fileHeader.Size > maxUploadBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("file exceeds upload limit"))
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return nil, false
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return nil, false
	}
	if len(raw) > maxUploadBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("file exceeds upload limit"))
		return nil, false
	}
	return raw, true
}
