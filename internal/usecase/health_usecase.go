package usecase

import (
	"context"
	"time"
)

// HealthStatus is the readiness report served by GET /api/health
type HealthStatus struct {
	Status string `json:"status"`
	Email  string `json:"email"`
	Redis  string `json:"redis"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

// Pinger reports whether the rate limit store is reachable; nil means not in use
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	mailer ContactMailer
	redis  Pinger
}

func NewHealthUsecase(mailer ContactMailer, redis Pinger) HealthUsecase {
	return &healthUsecase{mailer: mailer, redis: redis}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Status: "ok", Email: "configured", Redis: "disabled"}

	if u.mailer == nil || !u.mailer.IsConfigured() {
		status.Status = "degraded"
		status.Email = "not_configured"
	}

	if u.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := u.redis(pingCtx); err != nil {
			// Rate limiting falls back to memory, so this does not degrade the service
			status.Redis = "unavailable"
		} else {
			status.Redis = "ok"
		}
	}

	return status
}
