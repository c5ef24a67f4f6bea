package repository

import (
	"context"
	"muniportal/internal/models"

	"github.com/google/uuid"
)

// AreaRepository defines the interface for area persistence
type AreaRepository interface {
	Repository
	Create(ctx context.Context, area *models.Area) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Area, error)
	List(ctx context.Context) ([]models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	Delete(ctx context.Context, id uuid.UUID) error
}
