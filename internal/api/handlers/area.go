package handlers

import (
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AreaHandler handles municipal department management
type AreaHandler struct {
	areaRepo repository.AreaRepository
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaRepo repository.AreaRepository) *AreaHandler {
	return &AreaHandler{areaRepo: areaRepo}
}

// List godoc
// @Summary List areas
// @Tags areas
// @Produce json
// @Success 200 {array} models.Area
// @Security BearerAuth
// @Router /areas [get]
func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.areaRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener las áreas"})
		return
	}
	c.JSON(http.StatusOK, areas)
}

// Get godoc
// @Summary Get an area
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} models.Area
// @Failure 404 {object} models.ErrorResponse "Area not found"
// @Security BearerAuth
// @Router /areas/{id} [get]
func (h *AreaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	area, err := h.areaRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrAreaNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "área no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el área"})
		return
	}

	c.JSON(http.StatusOK, area)
}

// Create godoc
// @Summary Create an area
// @Tags areas
// @Accept json
// @Produce json
// @Param request body models.CreateAreaRequest true "Area data"
// @Success 201 {object} models.Area
// @Failure 409 {object} models.ErrorResponse "Area already exists"
// @Security BearerAuth
// @Router /areas [post]
func (h *AreaHandler) Create(c *gin.Context) {
	var req models.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	area := &models.Area{ID: uuid.New(), Nombre: req.Nombre}

	if err := h.areaRepo.Create(c.Request.Context(), area); err != nil {
		if err == repository.ErrAreaExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el área ya existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al crear el área"})
		return
	}

	c.JSON(http.StatusCreated, area)
}

// Update godoc
// @Summary Update an area
// @Tags areas
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Param request body models.UpdateAreaRequest true "Area data"
// @Success 200 {object} models.Area
// @Failure 404 {object} models.ErrorResponse "Area not found"
// @Security BearerAuth
// @Router /areas/{id} [put]
func (h *AreaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	var req models.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	area, err := h.areaRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrAreaNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "área no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el área"})
		return
	}

	area.Nombre = req.Nombre

	if err := h.areaRepo.Update(c.Request.Context(), area); err != nil {
		if err == repository.ErrAreaExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el área ya existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar el área"})
		return
	}

	c.JSON(http.StatusOK, area)
}

// Delete godoc
// @Summary Delete an area
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "Area not found"
// @Security BearerAuth
// @Router /areas/{id} [delete]
func (h *AreaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	if err := h.areaRepo.Delete(c.Request.Context(), id); err != nil {
		if err == repository.ErrAreaNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "área no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al eliminar el área"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "área eliminada"})
}
