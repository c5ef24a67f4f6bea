package repository

import (
	"context"
	"muniportal/internal/models"

	"github.com/google/uuid"
)

// QueryLogRepository defines the interface for the per-user lookup trail
type QueryLogRepository interface {
	Repository
	Create(ctx context.Context, log *models.UserQueryLog) error
	// GetRecentByUserID returns the user's latest lookups, newest first
	GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.UserQueryLog, error)
}
