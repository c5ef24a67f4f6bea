package models

import (
	"time"

	"github.com/google/uuid"
)

// Area represents a municipal department
type Area struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre" binding:"required,min=2,max=100,nospaces"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateAreaRequest represents the request to create a new area
type CreateAreaRequest struct {
	Nombre string `json:"nombre" binding:"required,min=2,max=100,nospaces"`
}

// UpdateAreaRequest represents the request to update an area
type UpdateAreaRequest struct {
	Nombre string `json:"nombre" binding:"required,min=2,max=100,nospaces"`
}
