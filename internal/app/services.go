package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/circuitbreaker"
	"github.com/guttosm/commerce-service/internal/http"
	"github.com/guttosm/commerce-service/internal/repository"
	"github.com/guttosm/commerce-service/internal/service"
)

// InitializeCache selects the cache backend. Redis is used when an
// address is configured and reachable, otherwise the in-process LRU
// store. Either way the store is wrapped with a circuit breaker so a
// failing backend degrades to cache misses.
func InitializeCache(cfg config.Config) *cache.BreakerStore {
	var store cache.Store
	if cfg.Redis.Addr != "" {
		redisStore := cache.NewRedisStore(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, falling back to in-process cache")
			store = cache.NewMemoryStore(cfg.Cache.MemoryCapacity)
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
			store = redisStore
		}
	} else {
		store = cache.NewMemoryStore(cfg.Cache.MemoryCapacity)
	}

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.Name = "cache"
	return cache.NewBreakerStore(store, breakerCfg)
}

// InitializeServices builds the service layer on the repositories and
// cache store. Content resources get the long content TTL, orders the
// order TTL, and everything else the default.
func InitializeServices(cfg config.Config, repos *repository.Repositories, store cache.Store) *http.Services {
	contentTTL := cfg.Cache.ContentTTL
	orderTTL := cfg.Cache.OrderTTL
	defaultTTL := cfg.Cache.DefaultTTL

	tokens := service.NewTokenService(cfg.Auth)
	orders := service.NewOrderService(repos.Orders, store, orderTTL)

	return &http.Services{
		Tokens:     tokens,
		Auth:       service.NewAuthService(repos.Users, tokens, store),
		Brands:     service.NewBrandService(repos.Brands, store, defaultTTL),
		Categories: service.NewCategoryService(repos.Categories, store, defaultTTL),
		Products:   service.NewProductService(repos.Products, store, defaultTTL),
		Banners:    service.NewBannerService(repos.Banners, store, contentTTL),
		Stores:     service.NewStoreService(repos.Stores, store, contentTTL),
		Coupons:    service.NewCouponService(repos.Coupons, store, contentTTL),
		Campaigns:  service.NewCampaignService(repos.Campaigns, store, contentTTL),
		Offers:     service.NewOfferService(repos.Offers, store, contentTTL),
		Orders:     orders,
		Wishlist:   service.NewWishlistService(repos.Wishlists, store, contentTTL),
		Cart:       service.NewCartService(repos.Carts, store, defaultTTL),
		Users:      service.NewUserService(repos.Users, store, defaultTTL),
		Analytics:  service.NewAnalyticsService(repos, orders, store, cfg.Cache.AnalyticsTTL),
	}
}
