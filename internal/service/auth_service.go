package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kycportal/internal/config"
	"kycportal/internal/domain"
)

const accessAudience = "access"

// Claims represents the JWT claims issued by the portal for an end user.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID       `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

// AuthService validates bearer tokens. Login and refresh are owned by the
// portal; GenerateAccessToken exists for tooling and tests.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
	GenerateAccessToken(userID uuid.UUID, email string, role domain.UserRole) (string, time.Time, error)
}

type authService struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg, now: time.Now}
}

func (s *authService) GenerateAccessToken(userID uuid.UUID, email string, role domain.UserRole) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.AccessTokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{accessAudience},
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithAudience(accessAudience),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing token: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
