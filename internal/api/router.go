package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"onlinemaid-backend/config"
	"onlinemaid-backend/internal/mw"
	"onlinemaid-backend/internal/store"
)

// Buckets of clients idle this long are dropped.
const rateLimiterIdle = 10 * time.Minute

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, notifier Notifier, logger *zap.Logger) *gin.Engine {
	handler := NewHandler(cfg, s, webpushOptions, notifier, logger)

	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(handler.logger))
	r.Use(mw.AdminIPWhitelist(mw.NewAccessGate(cfg.Access.AdminPathPrefix, cfg.Access.AdminIPWhitelist), handler.logger))

	rateLimiter := mw.RateLimiter(mw.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, rateLimiterIdle))
	caching := handler.cache.Middleware()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/maids", caching, handler.ListMaids)
		api.GET("/maids/:id", caching, handler.GetMaid)

		api.GET("/contact", handler.GetContactForm)
		api.POST("/contact", handler.PostContact)

		api.POST("/shortlist", handler.CreateShortlist)
		api.GET("/shortlist/:token", handler.GetShortlist)
		api.PUT("/shortlist/:token/maids/:id", handler.AddToShortlist)
		api.DELETE("/shortlist/:token/maids/:id", handler.RemoveFromShortlist)
		api.POST("/shortlist/:token/enquiry", handler.SubmitShortlist)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	admin := r.Group(cfg.Access.AdminPathPrefix)
	{
		admin.GET("/enquiries", handler.ListEnquiries)
		admin.GET("/enquiries/:id", handler.GetEnquiry)
		admin.GET("/exports/enquiries.xlsx", handler.ExportEnquiries)
		admin.GET("/shortlisted-enquiries", handler.ListShortlistedEnquiries)
		admin.GET("/shortlisted-enquiries/:id", handler.GetShortlistedEnquiry)
		admin.GET("/invoices", handler.ListInvoices)
		admin.POST("/invoices", handler.CreateInvoice)

		admin.POST("/agencies", handler.CreateAgency)
		admin.GET("/agencies/:id", handler.GetAgency)
		admin.DELETE("/agencies/:id", handler.DeleteAgency)
		admin.GET("/agencies/:id/employees", handler.ListEmployees)
		admin.POST("/agencies/:id/employees", handler.CreateEmployee)
		admin.POST("/agencies/:id/maids", handler.CreateMaid)

		admin.GET("/maids", handler.AdminListMaids)
		admin.PUT("/maids/:id/published", handler.SetPublished)
		admin.PUT("/maids/:id/featured", handler.SetFeatured)
		admin.DELETE("/maids/:id", handler.DeleteMaid)

		admin.GET("/migrations", handler.MigrationStatus)
	}

	return r
}
