package models

import (
	"time"

	"github.com/google/uuid"
)

// Cargo represents a staff position within the municipality
type Cargo struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre" binding:"required,min=2,max=100,nospaces"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCargoRequest represents the request to create a new cargo
type CreateCargoRequest struct {
	Nombre string `json:"nombre" binding:"required,min=2,max=100,nospaces"`
}

// UpdateCargoRequest represents the request to update a cargo
type UpdateCargoRequest struct {
	Nombre string `json:"nombre" binding:"required,min=2,max=100,nospaces"`
}
