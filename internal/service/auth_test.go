package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
)

func newAuthTestService(repo *fakeRepo[model.User], tokens TokenService) AuthService {
	return NewAuthService(repo, tokens, cache.NewMemoryStore(100))
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func userRepoWith(user *model.User) *fakeRepo[model.User] {
	return &fakeRepo[model.User]{
		findOneFn: func(_ context.Context, filter bson.M) (*model.User, error) {
			if user != nil && filter["email"] == user.Email {
				return user, nil
			}
			return nil, nil
		},
		findByIDFn: func(_ context.Context, id primitive.ObjectID, _ []string) (*model.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, nil
		},
		updateFn: func(_ context.Context, id primitive.ObjectID, update bson.M) (*model.User, error) {
			if user == nil || id != user.ID {
				return nil, nil
			}
			if set, ok := update["$set"].(bson.M); ok {
				if token, ok := set["refresh_token"].(string); ok {
					user.RefreshToken = token
				}
				if password, ok := set["password"].(string); ok {
					user.Password = password
				}
			}
			if _, ok := update["$unset"]; ok {
				user.RefreshToken = ""
			}
			return user, nil
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	repo := userRepoWith(nil)
	svc := newAuthTestService(repo, newTestTokenService())

	result, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    " Jamie@Example.com ",
		Password: "correct-horse",
		Name:     "Jamie",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.insertCalls)
	assert.Equal(t, "jamie@example.com", result.User.Email)
	assert.Equal(t, model.RoleUser, result.User.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := &model.User{ID: primitive.NewObjectID(), Email: "jamie@example.com"}
	svc := newAuthTestService(userRepoWith(existing), newTestTokenService())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jamie@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "correct-horse"),
		Role:     model.RoleUser,
	}
	svc := newAuthTestService(userRepoWith(user), newTestTokenService())

	result, err := svc.Login(ctx, &dto.LoginRequest{Email: "JAMIE@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), result.User.ID)
	assert.Equal(t, result.RefreshToken, user.RefreshToken)
}

func TestAuthService_Login_RejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "correct-horse"),
	}
	svc := newAuthTestService(userRepoWith(user), newTestTokenService())

	// Unknown email and wrong password produce the same error.
	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	unknownMsg := err.Error()

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "jamie@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, unknownMsg, err.Error())
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "correct-horse"),
	}
	tokens := newTestTokenService()
	svc := newAuthTestService(userRepoWith(user), tokens)

	result, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)
	firstRefresh := result.RefreshToken

	pair, err := svc.Refresh(ctx, firstRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, pair.RefreshToken, user.RefreshToken)

	// The first refresh token was rotated out and no longer matches
	// the one stored on the user document.
	if firstRefresh != user.RefreshToken {
		_, err = svc.Refresh(ctx, firstRefresh)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthService_Refresh_RejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "correct-horse"),
	}
	svc := newAuthTestService(userRepoWith(user), newTestTokenService())

	// Signed with a different secret, so verification fails.
	foreign := NewTokenService(config.AuthConfig{
		JWTSecretKey:     "other",
		JWTRefreshSecret: "other-refresh",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Minute,
	})
	pair, err := foreign.GenerateTokenPair(user, "code")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:           primitive.NewObjectID(),
		Email:        "jamie@example.com",
		RefreshToken: "live-token",
	}
	svc := newAuthTestService(userRepoWith(user), newTestTokenService())

	require.NoError(t, svc.Logout(ctx, user.ID.Hex()))
	assert.Empty(t, user.RefreshToken)

	assert.ErrorIs(t, svc.Logout(ctx, "not-an-id"), ErrInvalidID)
	assert.ErrorIs(t, svc.Logout(ctx, primitive.NewObjectID().Hex()), ErrNotFound)
}

func TestAuthService_WritesInvalidateUserCache(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "old-password"),
		Name:     "Jamie",
	}
	repo := userRepoWith(user)
	store := cache.NewMemoryStore(100)
	users := NewUserService(repo, store, time.Minute)
	auth := NewAuthService(repo, newTestTokenService(), store)

	_, err := users.GetByID(ctx, user.ID.Hex(), &dto.GetQuery{})
	require.NoError(t, err)
	_, err = users.GetByID(ctx, user.ID.Hex(), &dto.GetQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.findCalls)

	// ChangePassword reads once to verify the old password, then its
	// write must evict the cached admin view.
	require.NoError(t, auth.ChangePassword(ctx, user.ID.Hex(), &dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	}))
	require.Equal(t, 2, repo.findCalls)

	_, err = users.GetByID(ctx, user.ID.Hex(), &dto.GetQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.findCalls)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jamie@example.com",
		Password: hashPassword(t, "old-password"),
	}
	svc := newAuthTestService(userRepoWith(user), newTestTokenService())

	err := svc.ChangePassword(ctx, user.ID.Hex(), &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, user.ID.Hex(), &dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-password")))
}
