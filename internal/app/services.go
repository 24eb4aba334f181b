package app

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/ordering"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/services"
)

type Services struct {
	Professional services.ProfessionalService
	Catalog      services.CatalogService
	Testimonial  services.TestimonialService
	About        services.AboutService
	FAQ          services.FAQService
	Insurer      services.InsurerService
	Blog         services.BlogService
	Appointment  services.AppointmentService
	Portrait     services.PortraitService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	engine := ordering.NewEngine(db, log)

	seed, err := services.LoadSeedContent(log)
	if err != nil {
		return Services{}, fmt.Errorf("load seed content: %w", err)
	}

	// Portraits need both a bucket and a font; without either the roster
	// falls back to whatever photo URL the row already carries.
	var portrait services.PortraitService
	if clients.GcpBucket != nil && strings.TrimSpace(os.Getenv("PORTRAIT_FONT")) != "" {
		p, err := services.NewPortraitService(db, log, reposet.Professional, clients.GcpBucket)
		if err != nil {
			return Services{}, fmt.Errorf("init portrait service: %w", err)
		}
		portrait = p
	} else if clients.GcpBucket != nil {
		log.Warn("PORTRAIT_FONT not set, placeholder portraits disabled")
	}

	return Services{
		Professional: services.NewProfessionalService(db, log, reposet.Professional, engine, portrait, clients.ContentCache, seed),
		Catalog:      services.NewCatalogService(db, log, reposet.Service, engine, clients.GcpBucket, clients.ContentCache, seed),
		Testimonial:  services.NewTestimonialService(db, log, reposet.Testimonial, engine, clients.ContentCache),
		About:        services.NewAboutService(db, log, reposet.AboutFeature, engine, clients.ContentCache),
		FAQ:          services.NewFAQService(db, log, reposet.FAQ, engine, clients.ContentCache),
		Insurer:      services.NewInsurerService(db, log, reposet.Insurer, engine, clients.GcpBucket, clients.ContentCache),
		Blog:         services.NewBlogService(db, log, reposet.BlogPost, clients.GcpBucket, clients.ContentCache),
		Appointment:  services.NewAppointmentService(db, log, reposet.Appointment, clients.Sendgrid),
		Portrait:     portrait,
	}, nil
}
