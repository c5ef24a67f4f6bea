package repository

import (
	"context"
	"muniportal/internal/models"

	"github.com/google/uuid"
)

// CargoRepository defines the interface for cargo persistence
type CargoRepository interface {
	Repository
	Create(ctx context.Context, cargo *models.Cargo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cargo, error)
	List(ctx context.Context) ([]models.Cargo, error)
	Update(ctx context.Context, cargo *models.Cargo) error
	Delete(ctx context.Context, id uuid.UUID) error
}
