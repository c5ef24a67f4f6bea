package models

import (
	"time"

	"github.com/google/uuid"
)

// User states
const (
	UserStateActive    = "activo"
	UserStateSuspended = "suspendido"
)

// User represents a staff account in the portal
type User struct {
	ID        uuid.UUID  `json:"id"`
	DNI       string     `json:"dni"`
	Nombres   string     `json:"nombres"`
	Apellidos string     `json:"apellidos"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	RoleID    uuid.UUID  `json:"role_id"`
	Role      *Role      `json:"role,omitempty"`
	AreaID    *uuid.UUID `json:"area_id,omitempty"`
	CargoID   *uuid.UUID `json:"cargo_id,omitempty"`
	Estado    string     `json:"estado"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CreateUserRequest represents the request to create a new user
type CreateUserRequest struct {
	DNI       string     `json:"dni" binding:"required,len=8,digits"`
	Nombres   string     `json:"nombres" binding:"required,max=100"`
	Apellidos string     `json:"apellidos" binding:"required,max=100"`
	Email     string     `json:"email" binding:"required,email,max=100"`
	Password  string     `json:"password" binding:"required,min=8,max=72"`
	RoleID    uuid.UUID  `json:"role_id" binding:"required"`
	AreaID    *uuid.UUID `json:"area_id"`
	CargoID   *uuid.UUID `json:"cargo_id"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Nombres   *string    `json:"nombres,omitempty" binding:"omitempty,max=100"`
	Apellidos *string    `json:"apellidos,omitempty" binding:"omitempty,max=100"`
	Email     *string    `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Password  *string    `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
	RoleID    *uuid.UUID `json:"role_id,omitempty"`
	AreaID    *uuid.UUID `json:"area_id,omitempty"`
	CargoID   *uuid.UUID `json:"cargo_id,omitempty"`
}

// IsAdmin returns true if the user's role is the administrator role
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == RoleAdministrator
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.Nombres + " " + u.Apellidos
}
