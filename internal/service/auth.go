package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// AuthService provides account registration and session operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	users  repository.ResourceRepository[model.User]
	tokens TokenService
	store  cache.Store
	now    func() time.Time
}

// NewAuthService creates an auth service.
func NewAuthService(users repository.ResourceRepository[model.User], tokens TokenService, store cache.Store) AuthService {
	return &authService{users: users, tokens: tokens, store: store, now: time.Now}
}

// invalidateUser drops the cached admin views of an account after a
// self-service write, which bypasses the user resource wrapper.
func (s *authService) invalidateUser(ctx context.Context, id string) {
	cache.Invalidate(ctx, s.store,
		model.ResourceUsers+cache.KeySeparator+"*",
		model.ResourceUsers+":"+id+cache.KeySeparator+"*",
	)
}

// Register creates an account and logs it in.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ConflictError("user", "email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      req.Name,
		Phone:     req.Phone,
		Password:  string(hashed),
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ConflictError("user", "email")
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a token pair. A fresh login
// code invalidates refresh tokens from earlier sessions.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "invalid email or password"}
	}

	return s.issueSession(ctx, user)
}

func (s *authService) issueSession(ctx context.Context, user *model.User) (*dto.LoginResult, error) {
	loginCode := uuid.NewString()
	pair, err := s.tokens.GenerateTokenPair(user, loginCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if _, err := s.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"refresh_token": pair.RefreshToken,
		"last_login":    now,
		"updated_at":    now,
	}}); err != nil {
		return nil, err
	}
	s.invalidateUser(ctx, user.ID.Hex())

	return &dto.LoginResult{
		TokenPair: *pair,
		User: dto.UserSummary{
			ID:    user.ID.Hex(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

// Refresh exchanges a stored refresh token for a new pair. The token
// must verify and match the one on the user document.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "invalid or expired refresh token"}
	}
	userOID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "invalid or expired refresh token"}
	}

	user, err := s.users.FindByID(ctx, userOID, nil)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken != refreshToken {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "invalid or expired refresh token"}
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &result.TokenPair, nil
}

// Logout clears the stored refresh token, ending the session.
func (s *authService) Logout(ctx context.Context, userID string) error {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return InvalidIDError("user")
	}
	updated, err := s.users.UpdateByID(ctx, userOID, bson.M{
		"$unset": bson.M{"refresh_token": ""},
		"$set":   bson.M{"updated_at": s.now()},
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return NotFoundError("user")
	}
	s.invalidateUser(ctx, userID)
	return nil
}

// Me returns the authenticated user's profile.
func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}
	user, err := s.users.FindByID(ctx, userOID, nil)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundError("user")
	}
	return user, nil
}

// UpdateProfile is the self-service profile update; role and
// verification flags are not reachable from here.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "phone", req.Phone)
	setField(set, "avatar", req.Avatar)
	setField(set, "shipping_address", req.ShippingAddress)

	user, err := s.users.UpdateByID(ctx, userOID, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundError("user")
	}
	s.invalidateUser(ctx, userID)
	return user, nil
}

// ChangePassword verifies the old password before storing the new
// hash. All sessions stay valid; only the credentials change.
func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return InvalidIDError("user")
	}
	user, err := s.users.FindByID(ctx, userOID, nil)
	if err != nil {
		return err
	}
	if user == nil {
		return NotFoundError("user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return &Error{Kind: ErrInvalidCredentials, Message: "old password is incorrect"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err = s.users.UpdateByID(ctx, userOID, bson.M{"$set": touchUpdated(bson.M{
		"password": string(hashed),
	})}); err != nil {
		return err
	}
	s.invalidateUser(ctx, userID)
	return nil
}
