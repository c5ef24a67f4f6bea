package handlers

import (
	"muniportal/internal/api/middleware"
	"muniportal/internal/audit"
	"muniportal/internal/auth"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// recentQueryLimit caps the "mis consultas" view
const recentQueryLimit = 10

// AuditHandler serves the audit trail endpoints
type AuditHandler struct {
	auditRepo repository.AuditLogRepository
	queryRepo repository.QueryLogRepository
	sink      audit.Recorder
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditRepo repository.AuditLogRepository, queryRepo repository.QueryLogRepository, sink audit.Recorder) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo, queryRepo: queryRepo, sink: sink}
}

// List godoc
// @Summary List audit logs
// @Description List audit records, newest first, with optional filters
// @Tags audit
// @Produce json
// @Param actor query string false "Filter by actor"
// @Param action query string false "Filter by action"
// @Param outcome query string false "Filter by outcome"
// @Param from query string false "Created after (RFC 3339)"
// @Param to query string false "Created before (RFC 3339)"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.AuditLog
// @Failure 403 {object} models.ErrorResponse "Admin role required"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	filter := repository.AuditLogFilter{}

	if v := c.Query("actor"); v != "" {
		filter.Actor = &v
	}
	if v := c.Query("action"); v != "" {
		filter.Actions = []string{v}
	}
	if v := c.Query("module"); v != "" {
		filter.Modules = []string{v}
	}
	if v := c.Query("outcome"); v != "" {
		filter.Outcome = &v
	}
	if v := c.Query("from"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CreatedAfter = &ts
		}
	}
	if v := c.Query("to"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CreatedBefore = &ts
		}
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	filter.Limit = &limit

	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = &n
		}
	}

	logs, err := h.auditRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener los registros de auditoría"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// MyQueries godoc
// @Summary Caller's recent lookups
// @Description Return the caller's last 10 DNI/RUC lookups in a uniform shape
// @Tags audit
// @Produce json
// @Success 200 {array} models.QuerySummary
// @Failure 400 {object} models.ErrorResponse "Missing caller identity"
// @Router /audit-logs/mis-consultas [get]
func (h *AuditHandler) MyQueries(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMissingCaller})
		return
	}

	logs, err := h.queryRepo.GetRecentByUserID(c.Request.Context(), callerID, recentQueryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener las consultas"})
		return
	}

	summaries := make([]models.QuerySummary, 0, len(logs))
	for _, log := range logs {
		summaries = append(summaries, models.QuerySummary{
			Tipo:      log.QueryType,
			Documento: log.Document,
			Resultado: log.Result,
			Fecha:     log.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// Clear godoc
// @Summary Purge the audit trail
// @Description Delete every audit record. The purge itself is audited afterwards.
// @Tags audit
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse "Admin role required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /audit-logs/clear [post]
func (h *AuditHandler) Clear(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil || !user.IsAdmin() {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "se requiere rol administrador"})
		return
	}

	deleted, err := h.auditRepo.DeleteAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al limpiar los registros"})
		return
	}

	// Audited after the fact, so the purge record survives the purge
	h.sink.Record(c.Request.Context(), audit.Entry{
		Actor:       user.Email,
		Action:      models.ActionClearLogs,
		Module:      "auditoria",
		Description: "Limpieza del registro de auditoría",
		IPAddress:   c.ClientIP(),
		Outcome:     models.OutcomeSuccess,
		Details:     map[string]interface{}{"registros_eliminados": deleted},
	})

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "registros eliminados"})
}
