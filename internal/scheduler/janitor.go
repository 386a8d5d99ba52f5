package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/pourhouse/pourhouse/internal/auth/domain"
	"github.com/pourhouse/pourhouse/internal/clock"
	"github.com/pourhouse/pourhouse/internal/ratelimit"
	telemetrydomain "github.com/pourhouse/pourhouse/internal/telemetry/domain"
)

const janitorLockKey = "lock:janitor"

var ErrInvalidConfig = errors.New("invalid janitor configuration")

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Sessions  authdomain.SessionRepository
	Telemetry telemetrydomain.Repository
	Limiter   *ratelimit.DispenserLimiter `optional:"true"`
	Config    Config                      `optional:"true"`
}

// Janitor periodically removes rows nothing will read again: expired or
// revoked sessions, and telemetry past its retention window.
type Janitor struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       Config
	clock     clock.Clock
	sessions  authdomain.SessionRepository
	telemetry telemetrydomain.Repository
	limiter   *ratelimit.DispenserLimiter
}

func New(p Params) (*Janitor, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Sessions == nil || p.Telemetry == nil {
		return nil, ErrInvalidConfig
	}
	return &Janitor{
		db:        p.DB,
		log:       p.Log.Named("janitor"),
		cfg:       p.Config.withDefaults(),
		clock:     p.Clock,
		sessions:  p.Sessions,
		telemetry: p.Telemetry,
		limiter:   p.Limiter,
	}, nil
}

func (j *Janitor) RunForever(ctx context.Context) {
	ticker := time.NewTicker(j.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			j.log.Warn("janitor run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs one sweep. A redis lock keeps concurrent instances
// from sweeping the same rows; losing the lock just skips this round.
func (j *Janitor) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, j.cfg.JobTimeout)
	defer cancel()

	token, acquired, err := j.limiter.TryLock(ctx, janitorLockKey, j.cfg.JobTimeout)
	if err != nil {
		return err
	}
	if !acquired {
		j.log.Debug("janitor lock held elsewhere, skipping sweep")
		return nil
	}
	defer func() {
		if err := j.limiter.Release(ctx, janitorLockKey, token); err != nil {
			j.log.Warn("janitor lock release failed", zap.Error(err))
		}
	}()

	now := j.clock.Now()

	sessions, err := j.sessions.DeleteExpiredSessions(ctx, j.db, now)
	if err != nil {
		return err
	}
	events, err := j.telemetry.DeleteRecordedBefore(ctx, j.db, now.Add(-j.cfg.TelemetryRetention))
	if err != nil {
		return err
	}

	if sessions > 0 || events > 0 {
		j.log.Info("janitor sweep complete",
			zap.Int64("sessions_deleted", sessions),
			zap.Int64("telemetry_deleted", events),
		)
	}
	return nil
}
