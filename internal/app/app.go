package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/http"
)

// InitializeApp creates and wires all application dependencies. The
// returned cleanup function closes the database connection.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	InitializeLogger()

	db, repos, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	store := InitializeCache(cfg)
	services := InitializeServices(cfg, repos, store)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("mongodb", db)
	healthHandler.RegisterCircuitBreaker("cache", store.Breaker())

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		UserRateLimit:  cfg.Server.UserRateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		MetricsAPIKeys: cfg.Server.APIKeys,
	}

	router := http.NewRouter(services, healthHandler, routerCfg)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close MongoDB connection")
		}
	}

	return router, cleanup, nil
}
