package http

import (
	"context"

	"carrotrent-backend/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor stores the authenticated user in ctx.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the authenticated user, or nil on public routes.
func ActorFromContext(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorKey).(*domain.Actor)
	return actor
}
