package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/platform/sendgrid"
)

type SubmitAppointmentInput struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ConsultationType string `json:"consultation_type"`
	PreferredDate    string `json:"preferred_date"`
	PreferredTime    string `json:"preferred_time"`
	Message          string `json:"message"`
	// Extra carries any additional form fields as-is.
	Extra map[string]any `json:"extra"`
}

// ErrValidation marks caller mistakes so the HTTP layer can answer 400
// instead of 500.
var ErrValidation = errors.New("invalid input")

// AppointmentService persists consultation requests from the public site and
// notifies the clinic inbox. The notification is best-effort: a mail failure
// never loses the stored request.
type AppointmentService interface {
	Submit(ctx context.Context, input SubmitAppointmentInput) (*types.AppointmentRequest, error)
	List(ctx context.Context) ([]*types.AppointmentRequest, error)
}

type appointmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.AppointmentRepo
	mailClient  sendgrid.Client
	notifyEmail string
}

// NewAppointmentService wires the request intake. mailClient may be nil when
// SendGrid is not configured; requests are then stored without notification.
func NewAppointmentService(db *gorm.DB, log *logger.Logger, repo repos.AppointmentRepo, mailClient sendgrid.Client) AppointmentService {
	return &appointmentService{
		db:          db,
		log:         log.With("service", "AppointmentService"),
		repo:        repo,
		mailClient:  mailClient,
		notifyEmail: strings.TrimSpace(os.Getenv("APPOINTMENT_NOTIFY_EMAIL")),
	}
}

func (as *appointmentService) Submit(ctx context.Context, input SubmitAppointmentInput) (*types.AppointmentRequest, error) {
	req := &types.AppointmentRequest{
		FullName:         strings.TrimSpace(input.FullName),
		Email:            strings.TrimSpace(input.Email),
		Phone:            strings.TrimSpace(input.Phone),
		ConsultationType: strings.TrimSpace(input.ConsultationType),
		PreferredDate:    strings.TrimSpace(input.PreferredDate),
		PreferredTime:    strings.TrimSpace(input.PreferredTime),
		Message:          input.Message,
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("%w: full name required", ErrValidation)
	}
	if req.Email == "" && req.Phone == "" {
		return nil, fmt.Errorf("%w: email or phone required", ErrValidation)
	}
	if len(input.Extra) > 0 {
		raw, err := json.Marshal(input.Extra)
		if err != nil {
			return nil, fmt.Errorf("%w: extra fields not serializable", ErrValidation)
		}
		req.Extra = datatypes.JSON(raw)
	}

	if _, err := as.repo.Create(ctx, nil, req); err != nil {
		return nil, storeerr.Classify("appointment.create", err)
	}

	as.notify(ctx, req)
	return req, nil
}

func (as *appointmentService) List(ctx context.Context) ([]*types.AppointmentRequest, error) {
	rows, err := as.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("appointment.list", err)
	}
	return rows, nil
}

func (as *appointmentService) notify(ctx context.Context, req *types.AppointmentRequest) {
	if as.mailClient == nil || as.notifyEmail == "" {
		return
	}

	body := fmt.Sprintf(
		"New consultation request\n\nName: %s\nEmail: %s\nPhone: %s\nType: %s\nPreferred date: %s\nPreferred time: %s\n\n%s\n",
		req.FullName, req.Email, req.Phone, req.ConsultationType, req.PreferredDate, req.PreferredTime, req.Message,
	)

	_, err := as.mailClient.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: as.notifyEmail}},
		Subject: fmt.Sprintf("Consultation request from %s", req.FullName),
		Text:    body,
	})
	if err != nil {
		as.log.Warn("Failed to send appointment notification", "id", req.ID, "error", err.Error())
		return
	}

	now := time.Now().UTC()
	if err := as.repo.MarkNotified(ctx, nil, req.ID, now); err != nil {
		as.log.Warn("Failed to mark appointment notified", "id", req.ID, "error", err.Error())
		return
	}
	req.NotifiedAt = &now
}
