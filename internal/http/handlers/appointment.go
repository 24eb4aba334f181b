package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/response"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// POST /api/appointments
func (ah *AppointmentHandler) Submit(c *gin.Context) {
	var input services.SubmitAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req, err := ah.appointmentService.Submit(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"appointment_request": req})
}

// GET /api/admin/appointments
func (ah *AppointmentHandler) List(c *gin.Context) {
	rows, err := ah.appointmentService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"appointment_requests": rows})
}
