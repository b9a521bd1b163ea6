package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Developer-Chandan-Dev/fund-raising/api/responses"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/config"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
)

// ReadinessProbe is the health-check surface a wired dependency exposes.
type ReadinessProbe interface {
	Ping(ctx context.Context) error
}

const readyProbeTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InternFund-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every wired dependency. Nil pingers are skipped so the
// endpoint stays honest when an optional backend is not configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]ReadinessProbe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InternFund-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.probe.failed", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").WithDetails(map[string]any{"checks": checks}))
				return
			}
			checks[name] = "up"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// ReadinessDeps assembles the probe set for the ready endpoint.
func ReadinessDeps(dbP, redisP, gcsP ReadinessProbe) map[string]ReadinessProbe {
	return map[string]ReadinessProbe{
		"database": dbP,
		"redis":    redisP,
		"gcs":      gcsP,
	}
}
