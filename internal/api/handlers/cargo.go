package handlers

import (
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CargoHandler handles staff position management
type CargoHandler struct {
	cargoRepo repository.CargoRepository
}

// NewCargoHandler creates a new cargo handler
func NewCargoHandler(cargoRepo repository.CargoRepository) *CargoHandler {
	return &CargoHandler{cargoRepo: cargoRepo}
}

// List godoc
// @Summary List cargos
// @Tags cargos
// @Produce json
// @Success 200 {array} models.Cargo
// @Security BearerAuth
// @Router /cargos [get]
func (h *CargoHandler) List(c *gin.Context) {
	cargos, err := h.cargoRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener los cargos"})
		return
	}
	c.JSON(http.StatusOK, cargos)
}

// Get godoc
// @Summary Get a cargo
// @Tags cargos
// @Produce json
// @Param id path string true "Cargo ID"
// @Success 200 {object} models.Cargo
// @Failure 404 {object} models.ErrorResponse "Cargo not found"
// @Security BearerAuth
// @Router /cargos/{id} [get]
func (h *CargoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	cargo, err := h.cargoRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrCargoNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "cargo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el cargo"})
		return
	}

	c.JSON(http.StatusOK, cargo)
}

// Create godoc
// @Summary Create a cargo
// @Tags cargos
// @Accept json
// @Produce json
// @Param request body models.CreateCargoRequest true "Cargo data"
// @Success 201 {object} models.Cargo
// @Failure 409 {object} models.ErrorResponse "Cargo already exists"
// @Security BearerAuth
// @Router /cargos [post]
func (h *CargoHandler) Create(c *gin.Context) {
	var req models.CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	cargo := &models.Cargo{ID: uuid.New(), Nombre: req.Nombre}

	if err := h.cargoRepo.Create(c.Request.Context(), cargo); err != nil {
		if err == repository.ErrCargoExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el cargo ya existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al crear el cargo"})
		return
	}

	c.JSON(http.StatusCreated, cargo)
}

// Update godoc
// @Summary Update a cargo
// @Tags cargos
// @Accept json
// @Produce json
// @Param id path string true "Cargo ID"
// @Param request body models.UpdateCargoRequest true "Cargo data"
// @Success 200 {object} models.Cargo
// @Failure 404 {object} models.ErrorResponse "Cargo not found"
// @Security BearerAuth
// @Router /cargos/{id} [put]
func (h *CargoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	var req models.UpdateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	cargo, err := h.cargoRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrCargoNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "cargo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el cargo"})
		return
	}

	cargo.Nombre = req.Nombre

	if err := h.cargoRepo.Update(c.Request.Context(), cargo); err != nil {
		if err == repository.ErrCargoExists {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "el cargo ya existe"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar el cargo"})
		return
	}

	c.JSON(http.StatusOK, cargo)
}

// Delete godoc
// @Summary Delete a cargo
// @Tags cargos
// @Produce json
// @Param id path string true "Cargo ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "Cargo not found"
// @Security BearerAuth
// @Router /cargos/{id} [delete]
func (h *CargoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id inválido"})
		return
	}

	if err := h.cargoRepo.Delete(c.Request.Context(), id); err != nil {
		if err == repository.ErrCargoNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "cargo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al eliminar el cargo"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "cargo eliminado"})
}
