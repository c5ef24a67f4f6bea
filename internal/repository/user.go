package repository

import (
	"context"
	"muniportal/internal/models"

	"github.com/google/uuid"
)

// UserFilter defines the filter options for listing users
type UserFilter struct {
	Estado         *string
	RoleID         *uuid.UUID
	AreaID         *uuid.UUID
	IncludeDeleted bool
	Limit          *int
	Offset         *int
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Repository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByDNI(ctx context.Context, dni string) (*models.User, error)
	// GetByEmailOrDNI resolves a login identifier, matching email first
	GetByEmailOrDNI(ctx context.Context, identifier string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
