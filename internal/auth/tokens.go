package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcdev12/waypoint/internal/models"
)

// Token type discriminators carried in the JWT claims
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// RefreshCookieName is the httpOnly cookie carrying the refresh token
const RefreshCookieName = "refresh_token"

// Config holds JWT signing settings
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns the default token lifetimes
func DefaultConfig(secret string) Config {
	return Config{
		Secret:     secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// Claims are the JWT claims minted for both access and refresh tokens
type Claims struct {
	UserID    string   `json:"userId"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"tokenType"`
	jwt.RegisteredClaims
}

// Service mints and verifies tokens and hashes passwords
type Service struct {
	config Config
}

// NewService creates a new auth service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// HashPassword hashes a plaintext password with bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against its bcrypt hash
func (s *Service) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// MintAccessToken creates a short-lived access token for the user
func (s *Service) MintAccessToken(user *models.User) (string, error) {
	return s.mint(user, TokenTypeAccess, s.config.AccessTTL)
}

// MintRefreshToken creates a long-lived refresh token for the user
func (s *Service) MintRefreshToken(user *models.User) (string, error) {
	return s.mint(user, TokenTypeRefresh, s.config.RefreshTTL)
}

func (s *Service) mint(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    user.ID.String(),
		Roles:     user.Roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token of the expected type, returning
// the user id and roles it carries
func (s *Service) VerifyToken(tokenString, wantType string) (uuid.UUID, []string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != wantType {
		return uuid.Nil, nil, fmt.Errorf("expected %s token, got %s", wantType, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return userID, claims.Roles, nil
}
