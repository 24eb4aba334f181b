package app

import (
	"github.com/yungbote/clinicsite-backend/internal/http/handlers"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Professional *handlers.ProfessionalHandler
	Catalog      *handlers.CatalogHandler
	Testimonial  *handlers.TestimonialHandler
	About        *handlers.AboutHandler
	FAQ          *handlers.FAQHandler
	Insurer      *handlers.InsurerHandler
	Blog         *handlers.BlogHandler
	BlogSync     *handlers.BlogSyncHandler
	Appointment  *handlers.AppointmentHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, syncRunner handlers.BlogSyncRunner) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Professional: handlers.NewProfessionalHandler(serviceset.Professional),
		Catalog:      handlers.NewCatalogHandler(serviceset.Catalog),
		Testimonial:  handlers.NewTestimonialHandler(serviceset.Testimonial),
		About:        handlers.NewAboutHandler(serviceset.About),
		FAQ:          handlers.NewFAQHandler(serviceset.FAQ),
		Insurer:      handlers.NewInsurerHandler(serviceset.Insurer),
		Blog:         handlers.NewBlogHandler(serviceset.Blog),
		BlogSync:     handlers.NewBlogSyncHandler(log, syncRunner),
		Appointment:  handlers.NewAppointmentHandler(serviceset.Appointment),
	}
}
