package middleware

import (
	"context"

	"github.com/stockmasterhq/stockmaster-backend/pkg/auth"
)

type ctxKey string

const (
	ctxKeyActor    ctxKey = "actor"
	ctxKeyAccessID ctxKey = "access_id"
)

func withActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, actor)
}

// ActorFromContext returns the authenticated caller seeded by the auth
// middleware.
func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(auth.Actor)
	return actor, ok
}

func withAccessID(ctx context.Context, accessID string) context.Context {
	return context.WithValue(ctx, ctxKeyAccessID, accessID)
}

// AccessIDFromContext returns the jti of the presented access token.
func AccessIDFromContext(ctx context.Context) (string, bool) {
	accessID, ok := ctx.Value(ctxKeyAccessID).(string)
	return accessID, ok
}
