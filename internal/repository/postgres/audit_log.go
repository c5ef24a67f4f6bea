package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type auditLogRepository struct {
	repository.BaseRepository
}

// NewAuditLogRepository creates a new PostgreSQL audit log repository.
// Every insert runs directly against the pool, never joining a caller
// transaction, so a primary action's rollback cannot remove its trail.
func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *auditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, actor, action, module, description,
			ip_address, outcome, details, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()

	_, err := r.DB().ExecContext(ctx, query,
		log.ID,
		log.Actor,
		log.Action,
		log.Module,
		log.Description,
		log.IPAddress,
		log.Outcome,
		log.Details,
		log.CreatedAt,
	)

	return err
}

func (r *auditLogRepository) buildListQuery(filter repository.AuditLogFilter) (string, []interface{}) {
	var conditions []string
	var params []interface{}
	paramCount := 1

	query := `
		SELECT id, actor, action, module, description,
			   ip_address, outcome, details, created_at
		FROM audit_logs`

	if filter.Actor != nil {
		conditions = append(conditions, fmt.Sprintf("actor = $%d", paramCount))
		params = append(params, *filter.Actor)
		paramCount++
	}

	if len(filter.Actions) > 0 {
		conditions = append(conditions, fmt.Sprintf("action = ANY($%d)", paramCount))
		params = append(params, pq.Array(filter.Actions))
		paramCount++
	}

	if len(filter.Modules) > 0 {
		conditions = append(conditions, fmt.Sprintf("module = ANY($%d)", paramCount))
		params = append(params, pq.Array(filter.Modules))
		paramCount++
	}

	if filter.Outcome != nil {
		conditions = append(conditions, fmt.Sprintf("outcome = $%d", paramCount))
		params = append(params, *filter.Outcome)
		paramCount++
	}

	if filter.IPAddress != nil {
		conditions = append(conditions, fmt.Sprintf("ip_address = $%d", paramCount))
		params = append(params, *filter.IPAddress)
		paramCount++
	}

	if filter.CreatedBefore != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", paramCount))
		params = append(params, *filter.CreatedBefore)
		paramCount++
	}

	if filter.CreatedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("created_at > $%d", paramCount))
		params = append(params, *filter.CreatedAfter)
		paramCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, *filter.Limit)
		paramCount++
	}

	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", paramCount)
		params = append(params, *filter.Offset)
	}

	return query, params
}

func (r *auditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, error) {
	query, params := r.buildListQuery(filter)

	rows, err := r.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var log models.AuditLog
		err := rows.Scan(
			&log.ID,
			&log.Actor,
			&log.Action,
			&log.Module,
			&log.Description,
			&log.IPAddress,
			&log.Outcome,
			&log.Details,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *auditLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM audit_logs`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *auditLogRepository) CleanupOld(ctx context.Context, olderThan time.Duration) error {
	query := `DELETE FROM audit_logs WHERE created_at < $1`
	cutoff := time.Now().Add(-olderThan)
	_, err := r.DB().ExecContext(ctx, query, cutoff)
	return err
}
