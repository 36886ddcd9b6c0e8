// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// InitializeDatabase connects to MongoDB and builds the repository set.
func InitializeDatabase(cfg config.DatabaseConfig) (*repository.MongoDB, *repository.Repositories, error) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	repos := repository.NewRepositories(db)

	if err := seedDefaultAdmin(repos.Users); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default admin account")
	}

	return db, repos, nil
}

// seedDefaultAdmin creates a superadmin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no account with that email exists. Skipped when
// either variable is unset.
func seedDefaultAdmin(users repository.ResourceRepository[model.User]) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := users.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &model.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Password:   string(hash),
		Name:       "Administrator",
		Role:       model.RoleSuperAdmin,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := users.Insert(ctx, admin); err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("Created default admin account")
	return nil
}
