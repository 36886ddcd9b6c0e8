// Package main is the entry point for the commerce-service application.
//
// @title           Commerce Service API
// @version         1.0.0
// @description     E-commerce backend API: catalog, promotions, content,
// @description     orders, carts, wishlists, accounts, and reporting.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/commerce-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token, prefixed with "Bearer ".
//
// @tag.name        Auth
// @tag.description Account and session endpoints
//
// @tag.name        Orders
// @tag.description Order lifecycle operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/commerce-service/docs" // swagger docs

	"github.com/rs/zerolog/log"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/app"
)

func main() {
	cfg := config.Load()

	router, cleanup, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
