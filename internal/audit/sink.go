// Package audit provides the best-effort audit trail writer. Every write
// is contained: a failing insert is logged to operational output and
// swallowed, so audit logging can never change the outcome of the action
// it describes.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"muniportal/internal/models"
	"muniportal/internal/repository"

	"github.com/google/uuid"
)

// Column bounds. Fields are truncated before insertion so the write
// itself cannot fail on oversized input.
const (
	maxActor       = 100
	maxAction      = 50
	maxModule      = 100
	maxDescription = 1000
	maxIP          = 45
	maxOutcome     = 50
	maxDetails     = 1000
)

// ActorUnknown is recorded when no caller identity could be resolved
const ActorUnknown = "unknown"

// Entry describes a sensitive action to be recorded
type Entry struct {
	Actor       string
	Action      string
	Module      string
	Description string
	IPAddress   string
	Outcome     string
	Details     interface{} // marshaled to JSON when non-nil
}

// QueryEntry describes a lookup to be added to a user's personal trail
type QueryEntry struct {
	QueryType string
	Document  string
	Result    string
	Detail    *string
}

// Recorder is the audit surface handlers depend on
type Recorder interface {
	Record(ctx context.Context, e Entry)
	RecordQuery(ctx context.Context, userID uuid.UUID, e QueryEntry)
}

// Sink writes audit records through the repositories. Repositories issue
// their inserts directly against the connection pool, never inside a
// caller transaction, so a primary action rolling back cannot take its
// own audit trail with it.
type Sink struct {
	auditRepo repository.AuditLogRepository
	queryRepo repository.QueryLogRepository
}

// NewSink creates a sink over the given repositories
func NewSink(auditRepo repository.AuditLogRepository, queryRepo repository.QueryLogRepository) *Sink {
	return &Sink{auditRepo: auditRepo, queryRepo: queryRepo}
}

// Record inserts one audit record. Failures are logged and discarded.
func (s *Sink) Record(ctx context.Context, e Entry) {
	actor := e.Actor
	if actor == "" {
		actor = ActorUnknown
	}

	var details *string
	if e.Details != nil {
		if b, err := json.Marshal(e.Details); err == nil {
			d := truncate(string(b), maxDetails)
			details = &d
		} else {
			log.Printf("audit: failed to marshal details for action %q: %v", e.Action, err)
		}
	}

	rec := &models.AuditLog{
		Actor:       truncate(actor, maxActor),
		Action:      truncate(e.Action, maxAction),
		Module:      truncate(e.Module, maxModule),
		Description: truncate(e.Description, maxDescription),
		IPAddress:   truncate(NormalizeIP(e.IPAddress), maxIP),
		Outcome:     truncate(e.Outcome, maxOutcome),
		Details:     details,
	}

	if err := s.auditRepo.Create(ctx, rec); err != nil {
		log.Printf("audit: failed to record %q for %q: %v", rec.Action, rec.Actor, err)
	}
}

// RecordQuery appends a lookup to the user's personal trail. Failures are
// logged and discarded, same contract as Record.
func (s *Sink) RecordQuery(ctx context.Context, userID uuid.UUID, e QueryEntry) {
	var detail *string
	if e.Detail != nil {
		d := truncate(*e.Detail, maxDetails)
		detail = &d
	}

	rec := &models.UserQueryLog{
		UserID:    userID,
		QueryType: e.QueryType,
		Document:  truncate(e.Document, maxAction),
		Result:    truncate(e.Result, maxOutcome),
		Detail:    detail,
	}

	if err := s.queryRepo.Create(ctx, rec); err != nil {
		log.Printf("audit: failed to record %s query for user %s: %v", e.QueryType, userID, err)
	}
}

// NormalizeIP collapses IPv6 loopback forms to the IPv4 loopback literal
func NormalizeIP(ip string) string {
	switch ip {
	case "::1", "::ffff:127.0.0.1":
		return "127.0.0.1"
	}
	return ip
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
