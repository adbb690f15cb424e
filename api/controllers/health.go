package controllers

import (
	"net/http"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
	"github.com/stockmasterhq/stockmaster-backend/pkg/redis"
)

// HealthController serves liveness and readiness probes.
type HealthController struct {
	db    db.Pinger
	redis redis.Pinger
	logg  *logger.Logger
}

func NewHealthController(database db.Pinger, cache redis.Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{db: database, redis: cache, logg: logg}
}

// Live reports process liveness only.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready verifies the backing stores are reachable.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := c.db.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
		return
	}
	if err := c.redis.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
		return
	}

	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
