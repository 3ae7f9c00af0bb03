package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tavrika-widget/config"
	"tavrika-widget/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mw.RequestID(), mw.Logger(logger), gin.Recovery(), mw.CORS(cfg.AllowOrigins))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(ttl, 2*ttl), ttl)

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/floorplan", caching, h.GetFloorPlan)

		api.POST("/sessions", h.StartSession)
		sessions := api.Group("/sessions/:id")
		{
			sessions.GET("", h.withSession(h.GetSession))
			sessions.DELETE("", h.AbandonSession)
			sessions.PUT("/datetime", h.withSession(h.SetDateTime))
			sessions.GET("/hours", h.withSession(h.GetHours))
			sessions.GET("/minutes", h.withSession(h.GetMinutes))
			sessions.POST("/picker", h.withSession(h.OpenTablePicker))
			sessions.GET("/layout", h.withSession(h.GetLayout))
			sessions.POST("/table", h.withSession(h.SelectTable))
			sessions.PUT("/guests", h.withSession(h.SetGuests))
			sessions.POST("/guests/confirm", h.withSession(h.ConfirmGuests))
			sessions.POST("/review", h.withSession(h.Review))
			sessions.POST("/submit", h.withSession(h.Submit))
			sessions.POST("/close", h.withSession(h.Close))
		}

		staff := api.Group("/staff")
		{
			staff.GET("/subscriptions", h.GetSubscription)
			staff.PUT("/subscriptions", h.PutSubscription)
			staff.DELETE("/subscriptions", h.DeleteSubscription)
			staff.GET("/submissions", h.ListSubmissions)
		}

		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
