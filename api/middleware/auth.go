package middleware

import (
	"net/http"
	"strings"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/pkg/auth"
	"github.com/stockmasterhq/stockmaster-backend/pkg/auth/session"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// Authenticator validates bearer tokens and seeds the request context with
// the calling actor. Tokens whose session was revoked are rejected even when
// the signature is still valid.
type Authenticator struct {
	jwtCfg   config.JWTConfig
	sessions session.AccessSessionChecker
	logg     *logger.Logger
}

func NewAuthenticator(jwtCfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) *Authenticator {
	return &Authenticator{jwtCfg: jwtCfg, sessions: sessions, logg: logg}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r)
		if !ok {
			responses.WriteError(ctx, w, a.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
			return
		}

		claims, err := auth.ParseAccessToken(a.jwtCfg, token)
		if err != nil {
			responses.WriteError(ctx, w, a.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token"))
			return
		}

		active, err := a.sessions.HasSession(ctx, claims.ID)
		if err != nil {
			responses.WriteError(ctx, w, a.logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check session"))
			return
		}
		if !active {
			responses.WriteError(ctx, w, a.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
			return
		}

		actor := auth.Actor{
			UserID:   claims.UserID,
			Role:     claims.Role,
			Location: claims.Location,
		}

		ctx = withActor(ctx, actor)
		ctx = withAccessID(ctx, claims.ID)
		ctx = a.logg.WithUserID(ctx, actor.UserID.String())
		ctx = a.logg.WithActorRole(ctx, actor.Role.String())
		if actor.Location != "" {
			ctx = a.logg.WithLocation(ctx, actor.Location)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
