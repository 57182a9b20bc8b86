package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iq-admin/internal/dto"
	"iq-admin/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService validates operator bearer tokens issued by the admin backend.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, operatorID string, ttl time.Duration) (string, error)
}

type authServiceImpl struct {
	secret []byte
}

// NewAuthService returns nil when secret is empty, which disables operator
// authentication.
func NewAuthService(secret string) AuthService {
	if secret == "" {
		return nil
	}
	return &authServiceImpl{secret: []byte(secret)}
}

// CreateJWT issues an access token signed with the shared secret.
func (s *authServiceImpl) CreateJWT(ctx context.Context, operatorID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    operatorID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   operatorID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		msg := "JWT validation failed"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "JWT token expired"
		}
		logger.Get().Warn(msg, zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
