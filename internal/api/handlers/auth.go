package handlers

import (
	"muniportal/internal/attempt"
	"muniportal/internal/audit"
	"muniportal/internal/auth"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	authService *auth.Service
	sink        audit.Recorder
	tracker     *attempt.Tracker
}

// NewAuthHandler creates a new authentication handler with the given dependencies
func NewAuthHandler(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	authService *auth.Service,
	sink audit.Recorder,
	tracker *attempt.Tracker,
) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		authService: authService,
		sink:        sink,
		tracker:     tracker,
	}
}

// failLogin records a failed attempt for the identifier, audits it, and
// answers 401. When the in-window count crosses the threshold it emits a
// single warning record and flags the response.
func (h *AuthHandler) failLogin(c *gin.Context, identifier, reason string) {
	count, warned := h.tracker.RecordFailure(identifier)

	resp := models.LoginResponse{Success: false, Error: reason}

	if count >= attempt.WarnThreshold && !warned {
		h.sink.Record(c.Request.Context(), audit.Entry{
			Actor:       identifier,
			Action:      models.ActionLoginBlocked,
			Module:      "autenticacion",
			Description: "Límite de intentos de inicio de sesión alcanzado",
			IPAddress:   c.ClientIP(),
			Outcome:     models.OutcomeWarning,
			Details:     map[string]interface{}{"intentos": count},
		})
		h.tracker.MarkWarned(identifier)
		resp.Warning = models.WarningMaxAttempts
	}

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       identifier,
		Action:      models.ActionLogin,
		Module:      "autenticacion",
		Description: reason,
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeFailure,
	})

	c.JSON(http.StatusUnauthorized, resp)
}

// Login godoc
// @Summary User login
// @Description Authenticate staff by email or DNI and return access and session tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.LoginResponse "Invalid request format"
// @Failure 401 {object} models.LoginResponse "Invalid credentials or suspended account"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.LoginResponse{Success: false, Error: err.Error()})
		return
	}

	user, err := h.userRepo.GetByEmailOrDNI(c.Request.Context(), req.EmailOrDNI)
	if err != nil {
		if err == repository.ErrUserNotFound {
			// Unknown identifiers still count against the window
			h.failLogin(c, req.EmailOrDNI, "Credenciales incorrectas")
			return
		}
		c.JSON(http.StatusInternalServerError, models.LoginResponse{Success: false, Error: "Error al procesar el inicio de sesión"})
		return
	}

	if user.Estado == models.UserStateSuspended {
		h.sink.Record(c.Request.Context(), audit.Entry{
			Actor:       user.Email,
			Action:      models.ActionLogin,
			Module:      "autenticacion",
			Description: "Intento de inicio de sesión con cuenta suspendida",
			IPAddress:   c.ClientIP(),
			Outcome:     models.OutcomeFailure,
		})
		c.JSON(http.StatusUnauthorized, models.LoginResponse{Success: false, Error: "Usuario suspendido"})
		return
	}

	if err := h.authService.ComparePasswords(user.Password, req.Password); err != nil {
		h.failLogin(c, req.EmailOrDNI, "Credenciales incorrectas")
		return
	}

	// A successful login always clears the failure window
	h.tracker.Reset(req.EmailOrDNI)

	role, err := h.roleRepo.GetByID(c.Request.Context(), user.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.LoginResponse{Success: false, Error: "Error al obtener el rol del usuario"})
		return
	}
	user.Role = role

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.LoginResponse{Success: false, Error: "Error al generar el token de acceso"})
		return
	}

	sessionToken, err := h.authService.CreateSession(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.LoginResponse{Success: false, Error: "Error al crear la sesión"})
		return
	}

	// Primary outcome is settled; record the trail last
	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       user.Email,
		Action:      models.ActionLogin,
		Module:      "autenticacion",
		Description: "Inicio de sesión de " + user.FullName(),
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"email": user.Email, "dni": user.DNI},
	})

	c.JSON(http.StatusOK, models.LoginResponse{
		Success:      true,
		User:         user,
		Token:        token,
		SessionToken: sessionToken,
	})
}

// LogoutRequest carries the session token to invalidate
type LogoutRequest struct {
	SessionToken string `json:"sessionToken"`
}

// Logout godoc
// @Summary User logout
// @Description Invalidate the caller's session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest false "Session token"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "no autorizado"})
		return
	}

	var req LogoutRequest
	// Body is optional; without a token every session for the user is dropped
	_ = c.ShouldBindJSON(&req)

	var err error
	if req.SessionToken != "" {
		err = h.authService.DeleteSession(c.Request.Context(), req.SessionToken)
	} else {
		err = h.authService.DeleteAllSessions(c.Request.Context(), user.ID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al cerrar la sesión"})
		return
	}

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       user.Email,
		Action:      models.ActionLogout,
		Module:      "autenticacion",
		Description: "Cierre de sesión de " + user.FullName(),
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
	})

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "sesión cerrada"})
}
