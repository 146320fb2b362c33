package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
)

// TokenValidator validates a bearer token and resolves the actor.
type TokenValidator interface {
	ValidateToken(tokenString string) (*appctx.ActorContext, error)
}

// Auth middleware validates JWT tokens and populates the actor context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		actor, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		// Actor flows to the domain layer via request context
		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", actor.UserID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
