package repository

import "errors"

var (
	// Common errors
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrDNIExists     = errors.New("dni already exists")
	ErrUserSuspended = errors.New("user is suspended")

	// Role errors
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleExists    = errors.New("role already exists")
	ErrRoleInUse     = errors.New("role is in use")
	ErrRoleProtected = errors.New("cannot modify protected role")

	// Catalog errors
	ErrAreaNotFound  = errors.New("area not found")
	ErrAreaExists    = errors.New("area already exists")
	ErrCargoNotFound = errors.New("cargo not found")
	ErrCargoExists   = errors.New("cargo already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)
