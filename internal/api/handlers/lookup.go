package handlers

import (
	"errors"
	"muniportal/internal/api/middleware"
	"muniportal/internal/audit"
	"muniportal/internal/lookup"
	"muniportal/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

const errMissingCaller = "No se recibió userId para registrar la consulta"

// LookupHandler proxies DNI and RUC queries to the identity provider
type LookupHandler struct {
	resolver lookup.Resolver
	sink     audit.Recorder
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(resolver lookup.Resolver, sink audit.Recorder) *LookupHandler {
	return &LookupHandler{resolver: resolver, sink: sink}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LookupDNI godoc
// @Summary Look up a national identity record
// @Description Query the identity provider for the person behind an 8-digit DNI
// @Tags lookup
// @Produce json
// @Param dni path string true "8-digit DNI"
// @Success 200 {object} models.Person
// @Failure 400 {object} models.ErrorResponse "Invalid DNI, missing caller identity, or upstream rejection"
// @Failure 500 {object} models.ErrorResponse "Provider unreachable"
// @Router /dni/{dni} [get]
func (h *LookupHandler) LookupDNI(c *gin.Context) {
	dni := c.Param("dni")
	if len(dni) != 8 || !isDigits(dni) {
		h.sink.Record(c.Request.Context(), audit.Entry{
			Actor:       middleware.CallerActor(c),
			Action:      models.ActionDNILookup,
			Module:      "consultas",
			Description: "DNI con formato inválido: " + dni,
			IPAddress:   c.ClientIP(),
			Outcome:     models.OutcomeFailure,
		})
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "DNI inválido"})
		return
	}

	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMissingCaller})
		return
	}

	person, err := h.resolver.LookupDNI(c.Request.Context(), dni)
	if err != nil {
		h.recordLookup(c, "dni", dni, models.ActionDNILookup, err)
		var upstream *lookup.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: upstream.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al consultar el servicio externo"})
		return
	}

	h.recordLookup(c, "dni", dni, models.ActionDNILookup, nil)
	h.sink.RecordQuery(c.Request.Context(), callerID, audit.QueryEntry{
		QueryType: "dni",
		Document:  dni,
		Result:    models.OutcomeSuccess,
	})

	c.JSON(http.StatusOK, person)
}

// LookupRUC godoc
// @Summary Look up a taxpayer record
// @Description Query the identity provider for the taxpayer behind an 11-digit RUC
// @Tags lookup
// @Produce json
// @Param ruc path string true "11-digit RUC"
// @Success 200 {object} models.Taxpayer
// @Failure 400 {object} models.ErrorResponse "Invalid RUC, missing caller identity, or upstream rejection"
// @Failure 500 {object} models.ErrorResponse "Provider unreachable"
// @Router /ruc/{ruc} [get]
func (h *LookupHandler) LookupRUC(c *gin.Context) {
	ruc := c.Param("ruc")
	if len(ruc) != 11 || !isDigits(ruc) {
		h.sink.Record(c.Request.Context(), audit.Entry{
			Actor:       middleware.CallerActor(c),
			Action:      models.ActionRUCLookup,
			Module:      "consultas",
			Description: "RUC con formato inválido: " + ruc,
			IPAddress:   c.ClientIP(),
			Outcome:     models.OutcomeFailure,
		})
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "RUC inválido"})
		return
	}

	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMissingCaller})
		return
	}

	taxpayer, err := h.resolver.LookupRUC(c.Request.Context(), ruc)
	if err != nil {
		h.recordLookup(c, "ruc", ruc, models.ActionRUCLookup, err)
		var upstream *lookup.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: upstream.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al consultar el servicio externo"})
		return
	}

	h.recordLookup(c, "ruc", ruc, models.ActionRUCLookup, nil)
	h.sink.RecordQuery(c.Request.Context(), callerID, audit.QueryEntry{
		QueryType: "ruc",
		Document:  ruc,
		Result:    models.OutcomeSuccess,
	})

	c.JSON(http.StatusOK, taxpayer)
}

// recordLookup writes the general audit record for a lookup once its
// outcome is known, capturing the upstream message on failure.
func (h *LookupHandler) recordLookup(c *gin.Context, queryType, document, action string, lookupErr error) {
	entry := audit.Entry{
		Actor:     middleware.CallerActor(c),
		Action:    action,
		Module:    "consultas",
		IPAddress: c.ClientIP(),
	}

	if lookupErr != nil {
		entry.Outcome = models.OutcomeFailure
		entry.Description = "Consulta " + queryType + " " + document + " fallida"
		entry.Details = map[string]interface{}{"error": lookupErr.Error()}

		if callerID, ok := middleware.CallerID(c); ok {
			detail := lookupErr.Error()
			h.sink.RecordQuery(c.Request.Context(), callerID, audit.QueryEntry{
				QueryType: queryType,
				Document:  document,
				Result:    models.OutcomeFailure,
				Detail:    &detail,
			})
		}
	} else {
		entry.Outcome = models.OutcomeSuccess
		entry.Description = "Consulta " + queryType + " " + document
	}

	h.sink.Record(c.Request.Context(), entry)
}
