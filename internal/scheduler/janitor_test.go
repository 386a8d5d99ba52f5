package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/pourhouse/pourhouse/internal/auth/domain"
	authrepo "github.com/pourhouse/pourhouse/internal/auth/repository"
	"github.com/pourhouse/pourhouse/internal/clock"
	telemetrydomain "github.com/pourhouse/pourhouse/internal/telemetry/domain"
	telemetryrepo "github.com/pourhouse/pourhouse/internal/telemetry/repository"
)

func setupJanitor(t *testing.T, fc *clock.FakeClock) (*Janitor, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.Session{}, &telemetrydomain.TelemetryEvent{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	janitor, err := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     fc,
		Sessions:  authrepo.ProvideSessions(),
		Telemetry: telemetryrepo.Provide(),
	})
	require.NoError(t, err)
	return janitor, db, node
}

func TestRunOnce_PurgesExpiredSessions(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fc := clock.NewFakeClock(now)
	janitor, db, node := setupJanitor(t, fc)

	expired := authdomain.Session{
		ID:               node.Generate(),
		PrincipalID:      node.Generate(),
		Role:             "customer",
		SessionTokenHash: "expired",
		ExpiresAt:        now.Add(-time.Hour),
	}
	live := authdomain.Session{
		ID:               node.Generate(),
		PrincipalID:      node.Generate(),
		Role:             "customer",
		SessionTokenHash: "live",
		ExpiresAt:        now.Add(time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&live).Error)

	require.NoError(t, janitor.RunOnce(context.Background()))

	var remaining []authdomain.Session
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].SessionTokenHash)
}

func TestRunOnce_PrunesOldTelemetry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fc := clock.NewFakeClock(now)
	janitor, db, node := setupJanitor(t, fc)

	machineID := node.Generate()
	old := telemetrydomain.TelemetryEvent{
		ID:         node.Generate(),
		MachineID:  machineID,
		EventType:  "pour_complete",
		RecordedAt: now.Add(-45 * 24 * time.Hour),
	}
	recent := telemetrydomain.TelemetryEvent{
		ID:         node.Generate(),
		MachineID:  machineID,
		EventType:  "pour_complete",
		RecordedAt: now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	require.NoError(t, janitor.RunOnce(context.Background()))

	var remaining []telemetrydomain.TelemetryEvent
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, recent.ID, remaining[0].ID)
}

func TestRunOnce_EmptySweepIsClean(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	janitor, _, _ := setupJanitor(t, fc)

	assert.NoError(t, janitor.RunOnce(context.Background()))
}

func TestNew_RejectsMissingDeps(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
