package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"muniportal/internal/models"
)

// SessionRepository defines the interface for opaque session tokens
type SessionRepository interface {
	Repository
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
