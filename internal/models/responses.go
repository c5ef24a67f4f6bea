package models

// WarningMaxAttempts is attached to a login response the moment the
// failed-attempt threshold is crossed within the rolling window.
const WarningMaxAttempts = "max_attempts_reached"

// LoginRequest represents the login credentials
type LoginRequest struct {
	EmailOrDNI string `json:"emailOrDni" binding:"required,max=100"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse represents the response to a login attempt
type LoginResponse struct {
	Success      bool   `json:"success"`
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token,omitempty"`
	SessionToken string `json:"sessionToken,omitempty"`
	Error        string `json:"error,omitempty"`
	Warning      string `json:"warning,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}
