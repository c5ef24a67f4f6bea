package retention_test

import (
	"context"
	"testing"
	"time"

	"muniportal/internal/config"
	"muniportal/internal/models"
	"muniportal/internal/retention"
	"muniportal/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestSweeper_Sweep(t *testing.T) {
	auditRepo := testutil.NewFakeAuditRepo()
	ctx := context.Background()

	old := &models.AuditLog{
		Actor: "rosa@muni.gob.pe", Action: models.ActionLogin,
		Module: "autenticacion", Outcome: models.OutcomeSuccess,
		IPAddress: "127.0.0.1", CreatedAt: time.Now().Add(-100 * 24 * time.Hour),
	}
	recent := &models.AuditLog{
		Actor: "rosa@muni.gob.pe", Action: models.ActionLogin,
		Module: "autenticacion", Outcome: models.OutcomeSuccess,
		IPAddress: "127.0.0.1", CreatedAt: time.Now(),
	}
	require.NoError(t, auditRepo.Create(ctx, old))
	require.NoError(t, auditRepo.Create(ctx, recent))

	sweeper := retention.NewSweeper(auditRepo, config.AuditConfig{
		RetentionDays:     90,
		RetentionSchedule: "30 3 * * *",
	})

	require.NoError(t, sweeper.Sweep(ctx))

	require.Len(t, auditRepo.Logs, 1)
	require.WithinDuration(t, time.Now(), auditRepo.Logs[0].CreatedAt, time.Minute)
}

func TestSweeper_StartDisabled(t *testing.T) {
	auditRepo := testutil.NewFakeAuditRepo()

	sweeper := retention.NewSweeper(auditRepo, config.AuditConfig{RetentionDays: 0})
	require.NoError(t, sweeper.Start())
}

func TestSweeper_StartInvalidSchedule(t *testing.T) {
	auditRepo := testutil.NewFakeAuditRepo()

	sweeper := retention.NewSweeper(auditRepo, config.AuditConfig{
		RetentionDays:     30,
		RetentionSchedule: "not a schedule",
	})
	require.Error(t, sweeper.Start())
}
