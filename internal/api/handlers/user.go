package handlers

import (
	"log"
	"muniportal/internal/audit"
	"muniportal/internal/auth"
	"muniportal/internal/email"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles staff account management
type UserHandler struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	authService  *auth.Service
	emailService email.EmailSender
	sink         audit.Recorder
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	authService *auth.Service,
	emailService email.EmailSender,
	sink audit.Recorder,
) *UserHandler {
	return &UserHandler{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		authService:  authService,
		emailService: emailService,
		sink:         sink,
	}
}

func (h *UserHandler) actor(c *gin.Context) string {
	if user := auth.GetUserFromContext(c); user != nil {
		return user.Email
	}
	return audit.ActorUnknown
}

// Create godoc
// @Summary Create a staff account
// @Description Register a new staff member and notify them by email
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "Email or DNI already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.roleRepo.GetByID(c.Request.Context(), req.RoleID); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rol no encontrado"})
		return
	}

	hashed, err := h.authService.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar la contraseña"})
		return
	}

	user := &models.User{
		ID:        uuid.New(),
		DNI:       req.DNI,
		Nombres:   req.Nombres,
		Apellidos: req.Apellidos,
		Email:     req.Email,
		Password:  hashed,
		RoleID:    req.RoleID,
		AreaID:    req.AreaID,
		CargoID:   req.CargoID,
		Estado:    models.UserStateActive,
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		switch err {
		case repository.ErrEmailExists:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el correo ya está registrado"})
		case repository.ErrDNIExists:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el DNI ya está registrado"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al crear el usuario"})
		}
		return
	}

	// Notification is best effort, the account exists either way
	go func(to, name, mail string) {
		if err := h.emailService.SendAccountCreated(to, name, mail); err != nil {
			log.Printf("email: failed to send account created notice to %s: %v", to, err)
		}
	}(user.Email, user.FullName(), user.Email)

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       h.actor(c),
		Action:      models.ActionCreateUser,
		Module:      "usuarios",
		Description: "Creación del usuario " + user.Email,
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"user_id": user.ID, "dni": user.DNI},
	})

	c.JSON(http.StatusCreated, user)
}

// List godoc
// @Summary List staff accounts
// @Tags users
// @Produce json
// @Param estado query string false "Filter by estado (activo, suspendido)"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter := repository.UserFilter{}

	if v := c.Query("estado"); v != "" {
		filter.Estado = &v
	}
	if v := c.Query("role_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.RoleID = &id
		}
	}
	if v := c.Query("area_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.AreaID = &id
		}
	}

	users, err := h.userRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener los usuarios"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a staff account
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el usuario"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update a staff account
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el usuario"})
		return
	}

	if req.Nombres != nil {
		user.Nombres = *req.Nombres
	}
	if req.Apellidos != nil {
		user.Apellidos = *req.Apellidos
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar la contraseña"})
			return
		}
		user.Password = hashed
	}
	if req.RoleID != nil {
		if _, err := h.roleRepo.GetByID(c.Request.Context(), *req.RoleID); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rol no encontrado"})
			return
		}
		user.RoleID = *req.RoleID
	}
	if req.AreaID != nil {
		user.AreaID = req.AreaID
	}
	if req.CargoID != nil {
		user.CargoID = req.CargoID
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		if err == repository.ErrEmailExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el correo ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar el usuario"})
		return
	}

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       h.actor(c),
		Action:      models.ActionUpdateUser,
		Module:      "usuarios",
		Description: "Actualización del usuario " + user.Email,
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"user_id": user.ID},
	})

	c.JSON(http.StatusOK, user)
}

// Suspend godoc
// @Summary Suspend a staff account
// @Description Mark the account as suspended and drop all its sessions
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/suspend [post]
func (h *UserHandler) Suspend(c *gin.Context) {
	h.setEstado(c, models.UserStateSuspended)
}

// Reactivate godoc
// @Summary Reactivate a suspended staff account
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/reactivate [post]
func (h *UserHandler) Reactivate(c *gin.Context) {
	h.setEstado(c, models.UserStateActive)
}

func (h *UserHandler) setEstado(c *gin.Context, estado string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el usuario"})
		return
	}

	if err := h.userRepo.SetEstado(c.Request.Context(), id, estado); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar el estado"})
		return
	}

	message := "usuario reactivado"
	description := "Reactivación del usuario " + user.Email
	action := models.ActionUpdateUser

	if estado == models.UserStateSuspended {
		message = "usuario suspendido"
		description = "Suspensión del usuario " + user.Email
		action = models.ActionSuspendUser

		// A suspended account must not keep live sessions
		if err := h.authService.DeleteAllSessions(c.Request.Context(), id); err != nil {
			log.Printf("auth: failed to drop sessions for suspended user %s: %v", id, err)
		}

		go func(to, name string) {
			if err := h.emailService.SendAccountSuspended(to, name); err != nil {
				log.Printf("email: failed to send suspension notice to %s: %v", to, err)
			}
		}(user.Email, user.FullName())
	}

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       h.actor(c),
		Action:      action,
		Module:      "usuarios",
		Description: description,
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"user_id": id, "estado": estado},
	})

	c.JSON(http.StatusOK, models.SuccessResponse{Message: message})
}

// Delete godoc
// @Summary Delete a staff account
// @Description Soft delete the account and drop all its sessions
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el usuario"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al eliminar el usuario"})
		return
	}

	if err := h.authService.DeleteAllSessions(c.Request.Context(), id); err != nil {
		log.Printf("auth: failed to drop sessions for deleted user %s: %v", id, err)
	}

	go func(to, name string) {
		if err := h.emailService.SendAccountDeleted(to, name); err != nil {
			log.Printf("email: failed to send deletion notice to %s: %v", to, err)
		}
	}(user.Email, user.FullName())

	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       h.actor(c),
		Action:      models.ActionDeleteUser,
		Module:      "usuarios",
		Description: "Eliminación del usuario " + user.Email,
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"user_id": id},
	})

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "usuario eliminado"})
}
