package middleware

import (
	"muniportal/internal/auth"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	authService *auth.Service
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
}

func NewAuthMiddleware(authService *auth.Service, userRepo repository.UserRepository, roleRepo repository.RoleRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
	}
}

// resolveUser loads the full user (with role) for a bearer token. Returns
// nil when the token is absent or invalid.
func (m *AuthMiddleware) resolveUser(c *gin.Context) *models.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := m.authService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}

	userIDStr, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}

	user, err := m.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil
	}

	role, err := m.roleRepo.GetByID(c.Request.Context(), user.RoleID)
	if err != nil {
		return nil
	}
	user.Role = role

	return user
}

// AuthRequired rejects requests without a valid bearer token
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := m.resolveUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "no autorizado"})
			c.Abort()
			return
		}

		if user.Estado == models.UserStateSuspended {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Usuario suspendido"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("is_admin", user.IsAdmin())
		c.Next()
	}
}

// AdminRequired rejects callers whose role is not "administrador".
// Must run after AuthRequired.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "se requiere rol administrador"})
			c.Abort()
			return
		}
		c.Next()
	}
}
