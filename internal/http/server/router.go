package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/clinicsite-backend/internal/http/handlers"
	"github.com/yungbote/clinicsite-backend/internal/http/middleware"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	HealthHandler       *handlers.HealthHandler
	ProfessionalHandler *handlers.ProfessionalHandler
	CatalogHandler      *handlers.CatalogHandler
	TestimonialHandler  *handlers.TestimonialHandler
	AboutHandler        *handlers.AboutHandler
	FAQHandler          *handlers.FAQHandler
	InsurerHandler      *handlers.InsurerHandler
	BlogHandler         *handlers.BlogHandler
	BlogSyncHandler     *handlers.BlogSyncHandler
	AppointmentHandler  *handlers.AppointmentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("clinicsite-backend"))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// ===============
	// || Public    ||
	// ===============
	api := router.Group("/api")
	{
		api.GET("/professionals", cfg.ProfessionalHandler.List)
		api.GET("/professionals/:id", cfg.ProfessionalHandler.Get)
		api.GET("/services", cfg.CatalogHandler.List)
		api.GET("/services/:id", cfg.CatalogHandler.Get)
		api.GET("/testimonials", cfg.TestimonialHandler.List)
		api.GET("/about-features", cfg.AboutHandler.List)
		api.GET("/faqs", cfg.FAQHandler.List)
		api.GET("/insurers", cfg.InsurerHandler.List)
		api.GET("/blog", cfg.BlogHandler.ListPublished)
		api.GET("/blog/:slug", cfg.BlogHandler.GetBySlug)
		api.POST("/appointments", cfg.AppointmentHandler.Submit)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	{
		admin.POST("/professionals", cfg.ProfessionalHandler.Create)
		admin.PATCH("/professionals/:id", cfg.ProfessionalHandler.Update)
		admin.DELETE("/professionals/:id", cfg.ProfessionalHandler.Delete)
		admin.POST("/professionals/:id/move", cfg.ProfessionalHandler.Move)
		admin.POST("/professionals/:id/photo", cfg.ProfessionalHandler.UploadPhoto)

		admin.POST("/services", cfg.CatalogHandler.Create)
		admin.PATCH("/services/:id", cfg.CatalogHandler.Update)
		admin.DELETE("/services/:id", cfg.CatalogHandler.Delete)
		admin.POST("/services/:id/move", cfg.CatalogHandler.Move)
		admin.POST("/services/:id/image", cfg.CatalogHandler.UploadImage)

		admin.POST("/testimonials", cfg.TestimonialHandler.Create)
		admin.PATCH("/testimonials/:id", cfg.TestimonialHandler.Update)
		admin.DELETE("/testimonials/:id", cfg.TestimonialHandler.Delete)
		admin.POST("/testimonials/:id/move", cfg.TestimonialHandler.Move)

		admin.POST("/about-features", cfg.AboutHandler.Create)
		admin.PATCH("/about-features/:id", cfg.AboutHandler.Update)
		admin.DELETE("/about-features/:id", cfg.AboutHandler.Delete)
		admin.POST("/about-features/:id/move", cfg.AboutHandler.Move)

		admin.POST("/faqs", cfg.FAQHandler.Create)
		admin.PATCH("/faqs/:id", cfg.FAQHandler.Update)
		admin.DELETE("/faqs/:id", cfg.FAQHandler.Delete)
		admin.POST("/faqs/:id/move", cfg.FAQHandler.Move)

		admin.POST("/insurers", cfg.InsurerHandler.Create)
		admin.PATCH("/insurers/:id", cfg.InsurerHandler.Update)
		admin.DELETE("/insurers/:id", cfg.InsurerHandler.Delete)
		admin.POST("/insurers/:id/move", cfg.InsurerHandler.Move)
		admin.POST("/insurers/:id/logo", cfg.InsurerHandler.UploadLogo)

		admin.GET("/blog", cfg.BlogHandler.ListAll)
		admin.POST("/blog", cfg.BlogHandler.Create)
		admin.PATCH("/blog/:id", cfg.BlogHandler.Update)
		admin.DELETE("/blog/:id", cfg.BlogHandler.Delete)
		admin.POST("/blog/:id/cover", cfg.BlogHandler.UploadCover)
		admin.POST("/blog/sync", cfg.BlogSyncHandler.Trigger)

		admin.GET("/appointments", cfg.AppointmentHandler.List)
	}

	return router
}
