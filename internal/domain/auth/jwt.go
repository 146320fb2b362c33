// Package auth validates bearer tokens issued by the external identity
// provider. This service owns no credential store; it only checks the
// signature and lifts the actor identity into request context.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	appctx "stockyard/internal/core/context"
)

// JWTConfig holds token validation configuration.
type JWTConfig struct {
	Secret string
	Issuer string
}

// Claims represents the JWT claims this service understands.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	UserName string `json:"name"`
}

// JWTService validates tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// ValidateToken validates a token string and returns the actor.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.ActorContext, error) {
	parseOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if s.config.Issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return &appctx.ActorContext{
		UserID:   userID,
		UserName: claims.UserName,
	}, nil
}
