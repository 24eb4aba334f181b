package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/platform/sendgrid"
)

type fakeAppointmentRepo struct {
	rows     []*types.AppointmentRequest
	notified map[uuid.UUID]time.Time
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{notified: map[uuid.UUID]time.Time{}}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, tx *gorm.DB, a *types.AppointmentRequest) (*types.AppointmentRequest, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.rows = append(f.rows, a)
	return a, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AppointmentRequest, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AppointmentRequest, error) {
	return f.rows, nil
}

func (f *fakeAppointmentRepo) MarkNotified(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	f.notified[id] = at
	return nil
}

type fakeMailClient struct {
	sent []sendgrid.SendEmailRequest
	fail bool
}

func (f *fakeMailClient) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	if f.fail {
		return nil, fmt.Errorf("smtp down")
	}
	f.sent = append(f.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

func TestAppointmentSubmitValidation(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := NewAppointmentService(nil, log, newFakeAppointmentRepo(), nil)

	if _, err := svc.Submit(context.Background(), SubmitAppointmentInput{Email: "a@b.c"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name: got %v, want ErrValidation", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitAppointmentInput{FullName: "Jo Doe"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing contact: got %v, want ErrValidation", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitAppointmentInput{FullName: "Jo Doe", Phone: "555-0101"}); err != nil {
		t.Fatalf("phone-only submit: %v", err)
	}
}

func TestAppointmentSubmitNotifies(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Setenv("APPOINTMENT_NOTIFY_EMAIL", "frontdesk@example.com")

	repo := newFakeAppointmentRepo()
	mail := &fakeMailClient{}
	svc := NewAppointmentService(nil, log, repo, mail)

	req, err := svc.Submit(context.Background(), SubmitAppointmentInput{
		FullName: "  Jo Doe  ",
		Email:    "jo@example.com",
		Extra:    map[string]any{"referral": "friend"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.FullName != "Jo Doe" {
		t.Fatalf("full name not trimmed: %q", req.FullName)
	}
	if len(req.Extra) == 0 {
		t.Fatalf("extra fields not stored")
	}
	if len(mail.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mail.sent))
	}
	if mail.sent[0].To[0].Email != "frontdesk@example.com" {
		t.Fatalf("notification went to %q", mail.sent[0].To[0].Email)
	}
	if req.NotifiedAt == nil {
		t.Fatalf("NotifiedAt not set after successful notification")
	}
	if _, ok := repo.notified[req.ID]; !ok {
		t.Fatalf("repo MarkNotified not called")
	}
}

func TestAppointmentSubmitSurvivesMailFailure(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Setenv("APPOINTMENT_NOTIFY_EMAIL", "frontdesk@example.com")

	repo := newFakeAppointmentRepo()
	svc := NewAppointmentService(nil, log, repo, &fakeMailClient{fail: true})

	req, err := svc.Submit(context.Background(), SubmitAppointmentInput{FullName: "Jo Doe", Email: "jo@example.com"})
	if err != nil {
		t.Fatalf("submit should survive mail failure: %v", err)
	}
	if req.NotifiedAt != nil {
		t.Fatalf("NotifiedAt set despite mail failure")
	}
	if len(repo.rows) != 1 {
		t.Fatalf("request not stored")
	}
}
