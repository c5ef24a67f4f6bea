package postgres

import (
	"context"
	"database/sql"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"time"

	"github.com/google/uuid"
)

type queryLogRepository struct {
	repository.BaseRepository
}

// NewQueryLogRepository creates a new PostgreSQL per-user query log repository
func NewQueryLogRepository(db *sql.DB) repository.QueryLogRepository {
	return &queryLogRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *queryLogRepository) Create(ctx context.Context, log *models.UserQueryLog) error {
	query := `
		INSERT INTO user_query_logs (id, user_id, query_type, document, result, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()

	_, err := r.DB().ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.QueryType,
		log.Document,
		log.Result,
		log.Detail,
		log.CreatedAt,
	)

	return err
}

func (r *queryLogRepository) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.UserQueryLog, error) {
	query := `
		SELECT id, user_id, query_type, document, result, detail, created_at
		FROM user_query_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.DB().QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.UserQueryLog
	for rows.Next() {
		var log models.UserQueryLog
		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.QueryType,
			&log.Document,
			&log.Result,
			&log.Detail,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
