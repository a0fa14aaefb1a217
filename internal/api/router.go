package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"clinic-admissions-backend/config"
	"clinic-admissions-backend/internal/mw"
	"clinic-admissions-backend/internal/notification"
	"clinic-admissions-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// POST /api/patient, GET /api/patient?Search=
		api.POST("/patient", handler.RegisterPatient)
		api.GET("/patient", handler.SearchPatients)

		// Admission and checkout
		api.POST("/patient/admit", handler.AdmitPatient)
		api.POST("/patient/checkout", handler.CheckoutPatient)

		// Room discovery; capacity moves slowly, so a short cache is fine.
		api.GET("/rooms", caching, handler.GetRooms)

		// Bed-available push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
