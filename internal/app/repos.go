package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type Repos struct {
	Professional repos.ProfessionalRepo
	Service      repos.ServiceRepo
	Testimonial  repos.TestimonialRepo
	AboutFeature repos.AboutFeatureRepo
	FAQ          repos.FAQRepo
	Insurer      repos.InsurerRepo
	BlogPost     repos.BlogPostRepo
	Appointment  repos.AppointmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Professional: repos.NewProfessionalRepo(db, log),
		Service:      repos.NewServiceRepo(db, log),
		Testimonial:  repos.NewTestimonialRepo(db, log),
		AboutFeature: repos.NewAboutFeatureRepo(db, log),
		FAQ:          repos.NewFAQRepo(db, log),
		Insurer:      repos.NewInsurerRepo(db, log),
		BlogPost:     repos.NewBlogPostRepo(db, log),
		Appointment:  repos.NewAppointmentRepo(db, log),
	}
}
