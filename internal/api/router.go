package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"junction-admin-backend/config"
	"junction-admin-backend/internal/mw"
	"junction-admin-backend/internal/store"
)

// NewRouter creates and configures a new Gin router. The returned Handler
// must be closed on shutdown so pending reconciliations are cancelled.
func NewRouter(s store.Store, webpushOptions *webpush.Options, cfg *config.Config) (*gin.Engine, *Handler) {
	r := gin.Default()

	debounce := time.Duration(cfg.Reconciler.DebounceMS) * time.Millisecond
	handler := NewHandler(s, webpushOptions, debounce)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Table data. Device/gateway/junction listings are cacheable; the
		// cache TTL is short enough that preference changes show up fast.
		api.GET("/devices", caching, handler.GetDevices)
		api.GET("/gateways", caching, handler.GetGateways)
		api.GET("/junctions", caching, handler.GetJunctions)

		// Batched sort-order writes (drag reordering).
		api.POST("/devices/sortorders", handler.PostDeviceSortOrders)
		api.POST("/junctions/sortorders", handler.PostJunctionSortOrders)

		// Raw keyed preference access.
		api.GET("/preferences/:scope", handler.GetPreference)
		api.PUT("/preferences/:scope", handler.PutPreference)

		// Per-table view preferences.
		api.GET("/tables/:table/columns", handler.GetTableColumns)
		api.POST("/tables/:table/columns/toggle", handler.PostTableColumnToggle)
		api.POST("/tables/:table/columns/move", handler.PostTableColumnMove)
		api.POST("/tables/:table/sort", handler.PostTableSort)

		// Push subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r, handler
}
