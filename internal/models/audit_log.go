package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit outcomes
const (
	OutcomeSuccess = "exitoso"
	OutcomeFailure = "fallido"
	OutcomeWarning = "advertencia"
)

// Audit actions
const (
	ActionLogin        = "login"
	ActionLogout       = "logout"
	ActionLoginBlocked = "intento_bloqueado"
	ActionDNILookup    = "busqueda_dni"
	ActionRUCLookup    = "busqueda_ruc"
	ActionCreateUser   = "crear_usuario"
	ActionUpdateUser   = "actualizar_usuario"
	ActionSuspendUser  = "suspender_usuario"
	ActionDeleteUser   = "eliminar_usuario"
	ActionClearLogs    = "limpiar_logs"
)

// AuditLog represents an immutable record of a sensitive action.
// Rows are only ever inserted or bulk-deleted; there is no update path.
type AuditLog struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Actor       string    `json:"actor" db:"actor"` // email, DNI or "unknown"
	Action      string    `json:"action" db:"action"`
	Module      string    `json:"module" db:"module"`
	Description string    `json:"description" db:"description"`
	IPAddress   string    `json:"ip_address" db:"ip_address"`
	Outcome     string    `json:"outcome" db:"outcome"`
	Details     *string   `json:"details" db:"details"` // opaque JSON payload
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserQueryLog is the per-user lookup trail backing the "mis consultas"
// view. It is a parallel append-only log, not a view over AuditLog.
type UserQueryLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	QueryType string    `json:"query_type" db:"query_type"` // dni | ruc
	Document  string    `json:"document" db:"document"`
	Result    string    `json:"result" db:"result"`
	Detail    *string   `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// QuerySummary is the uniform shape returned by the mis-consultas endpoint
type QuerySummary struct {
	Tipo      string    `json:"tipo"`
	Documento string    `json:"documento"`
	Resultado string    `json:"resultado"`
	Fecha     time.Time `json:"fecha"`
}
