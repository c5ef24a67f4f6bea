package postgres

import (
	"context"
	"database/sql"
	"muniportal/internal/models"
	"muniportal/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type areaRepository struct {
	repository.BaseRepository
}

// NewAreaRepository creates a new PostgreSQL area repository
func NewAreaRepository(db *sql.DB) repository.AreaRepository {
	return &areaRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *areaRepository) Create(ctx context.Context, area *models.Area) error {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}

	query := `
		INSERT INTO areas (id, nombre)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`

	err := r.DB().QueryRowContext(ctx, query, area.ID, area.Nombre).
		Scan(&area.CreatedAt, &area.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrAreaExists
		}
		return err
	}

	return nil
}

func (r *areaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Area, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM areas WHERE id = $1`

	var area models.Area
	err := r.DB().QueryRowContext(ctx, query, id).Scan(
		&area.ID, &area.Nombre, &area.CreatedAt, &area.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrAreaNotFound
		}
		return nil, err
	}

	return &area, nil
}

func (r *areaRepository) List(ctx context.Context) ([]models.Area, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM areas ORDER BY nombre`

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		var area models.Area
		if err := rows.Scan(&area.ID, &area.Nombre, &area.CreatedAt, &area.UpdatedAt); err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}

	return areas, rows.Err()
}

func (r *areaRepository) Update(ctx context.Context, area *models.Area) error {
	query := `
		UPDATE areas SET nombre = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.DB().QueryRowContext(ctx, query, area.ID, area.Nombre).Scan(&area.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrAreaNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrAreaExists
		}
		return err
	}

	return nil
}

func (r *areaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrAreaNotFound
	}

	return nil
}
