package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/clinicsite-backend/internal/http/server"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		HealthHandler:       handlerset.Health,
		ProfessionalHandler: handlerset.Professional,
		CatalogHandler:      handlerset.Catalog,
		TestimonialHandler:  handlerset.Testimonial,
		AboutHandler:        handlerset.About,
		FAQHandler:          handlerset.FAQ,
		InsurerHandler:      handlerset.Insurer,
		BlogHandler:         handlerset.Blog,
		BlogSyncHandler:     handlerset.BlogSync,
		AppointmentHandler:  handlerset.Appointment,
	})
}
