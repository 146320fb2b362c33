// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// ActorContext identifies who performs the request.
// Filled by the auth middleware from validated JWT claims; movement
// records are stamped with these values when the caller omits them.
type ActorContext struct {
	UserID   string
	UserName string
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the actor's user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.UserID
	}
	return ""
}

// GetUserName returns the actor's display name from context or empty string.
func GetUserName(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.UserName
	}
	return ""
}
