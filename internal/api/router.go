package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hostel-income-backend/config"
	"hostel-income-backend/internal/mw"
	"hostel-income-backend/internal/report"
	"hostel-income-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, engine *report.Engine, cfg *config.ServerConfig, webpushOptions *webpush.Options, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, engine, webpushOptions, log)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// A report run must recompute and persist every time, so it is never
		// served from cache.
		api.GET("/owners/:owner_id/report", handler.RunReport)
		api.GET("/owners/:owner_id/reports", handler.ListReports)
		api.GET("/reports/:report_id/export", handler.ExportReport)

		api.GET("/owners/:owner_id/availability", caching, handler.GetAvailability)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
