package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdministrator is the role name required for administrative endpoints
const RoleAdministrator = "administrador"

// Role represents a role in the system
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required,min=3,max=50,nospaces"`
	IsProtected bool      `json:"is_protected" db:"is_protected"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRoleRequest represents the request to create a new role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50,nospaces"`
	IsProtected bool   `json:"is_protected"`
}

// UpdateRoleRequest represents the request to update a role
type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50,nospaces"`
	IsProtected bool   `json:"is_protected"`
}
