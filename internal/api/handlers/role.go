package handlers

import (
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoleHandler handles role management
type RoleHandler struct {
	roleRepo repository.RoleRepository
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleRepo repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo}
}

// List godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener los roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// Get godoc
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} models.Role
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	role, err := h.roleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrRoleNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rol no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el rol"})
		return
	}

	c.JSON(http.StatusOK, role)
}

// Create godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param request body models.CreateRoleRequest true "Role data"
// @Success 201 {object} models.Role
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "Role already exists"
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req models.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	role := &models.Role{
		ID:          uuid.New(),
		Name:        req.Name,
		IsProtected: req.IsProtected,
	}

	if err := h.roleRepo.Create(c.Request.Context(), role); err != nil {
		if err == repository.ErrRoleExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el rol ya existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al crear el rol"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

// Update godoc
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body models.UpdateRoleRequest true "Role data"
// @Success 200 {object} models.Role
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 409 {object} models.ErrorResponse "Role is protected"
// @Security BearerAuth
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	role, err := h.roleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrRoleNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rol no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el rol"})
		return
	}

	role.Name = req.Name
	role.IsProtected = req.IsProtected

	if err := h.roleRepo.Update(c.Request.Context(), role); err != nil {
		switch err {
		case repository.ErrRoleProtected:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el rol está protegido"})
		case repository.ErrRoleExists:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el rol ya existe"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar el rol"})
		}
		return
	}

	c.JSON(http.StatusOK, role)
}

// Delete godoc
// @Summary Delete a role
// @Description Protected roles and roles still assigned to users cannot be removed
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 409 {object} models.ErrorResponse "Role protected or in use"
// @Security BearerAuth
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	if err := h.roleRepo.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case repository.ErrRoleNotFound:
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "rol no encontrado"})
		case repository.ErrRoleProtected:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el rol está protegido"})
		case repository.ErrRoleInUse:
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el rol está asignado a usuarios"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al eliminar el rol"})
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "rol eliminado"})
}
