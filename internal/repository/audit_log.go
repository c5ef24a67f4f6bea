package repository

import (
	"context"
	"muniportal/internal/models"
	"time"
)

// AuditLogFilter defines the filter options for listing audit logs
type AuditLogFilter struct {
	Actor         *string   // Filter by actor
	Actions       []string  // Filter by actions
	Modules       []string  // Filter by module groupings
	Outcome       *string   // Filter by outcome
	IPAddress     *string   // Filter by IP address
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Limit         *int
	Offset        *int
}

// AuditLogRepository defines the interface for the audit trail store.
// Records are append-only: there is no update operation, only insert,
// filtered reads, bulk delete-all and an age-based cleanup.
type AuditLogRepository interface {
	Repository
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
	DeleteAll(ctx context.Context) (int64, error)
	CleanupOld(ctx context.Context, olderThan time.Duration) error
}
