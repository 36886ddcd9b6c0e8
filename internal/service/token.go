package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
)

// ErrInvalidToken is returned when a token fails parsing, signature
// verification, or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// ClaimsWithJWT carries the application claims inside a signed token.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenService signs and verifies JWT access and refresh tokens.
// Refresh tokens carry a login code that is matched against the one
// stored on the user document, so a logout or new login invalidates
// every older refresh token.
type TokenService interface {
	GenerateTokenPair(user *model.User, loginCode string) (*dto.TokenPair, error)
	ValidateAccessToken(tokenString string) (*dto.Claims, error)
	ValidateRefreshToken(tokenString string) (*dto.Claims, error)
}

type tokenService struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

// NewTokenService creates a token service from auth configuration.
func NewTokenService(cfg config.AuthConfig) TokenService {
	return &tokenService{
		secretKey:        []byte(cfg.JWTSecretKey),
		refreshSecretKey: []byte(cfg.JWTRefreshSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		now:              time.Now,
	}
}

// GenerateTokenPair signs a new access and refresh token for the user.
func (s *tokenService) GenerateTokenPair(user *model.User, loginCode string) (*dto.TokenPair, error) {
	if user.ID.IsZero() {
		return nil, errors.New("user id is zero, cannot sign token")
	}

	now := s.now()
	accessExpiry := now.Add(s.accessTokenTTL)

	accessToken, err := s.sign(user, "", now, accessExpiry, s.secretKey)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sign(user, loginCode, now, now.Add(s.refreshTokenTTL), s.refreshSecretKey)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *tokenService) sign(user *model.User, loginCode string, issuedAt, expiresAt time.Time, key []byte) (string, error) {
	claims := &ClaimsWithJWT{
		Claims: dto.Claims{
			UserID:    user.ID.Hex(),
			Email:     user.Email,
			Role:      user.Role,
			LoginCode: loginCode,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ValidateAccessToken parses and verifies an access token.
func (s *tokenService) ValidateAccessToken(tokenString string) (*dto.Claims, error) {
	return s.validate(tokenString, s.secretKey)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (s *tokenService) ValidateRefreshToken(tokenString string) (*dto.Claims, error) {
	return s.validate(tokenString, s.refreshSecretKey)
}

func (s *tokenService) validate(tokenString string, key []byte) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*ClaimsWithJWT); ok && token.Valid {
		return &claims.Claims, nil
	}
	return nil, ErrInvalidToken
}
