package postgres

import (
	"context"
	"database/sql"
	"muniportal/internal/models"
	"muniportal/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type cargoRepository struct {
	repository.BaseRepository
}

// NewCargoRepository creates a new PostgreSQL cargo repository
func NewCargoRepository(db *sql.DB) repository.CargoRepository {
	return &cargoRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *cargoRepository) Create(ctx context.Context, cargo *models.Cargo) error {
	if cargo.ID == uuid.Nil {
		cargo.ID = uuid.New()
	}

	query := `
		INSERT INTO cargos (id, nombre)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`

	err := r.DB().QueryRowContext(ctx, query, cargo.ID, cargo.Nombre).
		Scan(&cargo.CreatedAt, &cargo.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrCargoExists
		}
		return err
	}

	return nil
}

func (r *cargoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Cargo, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM cargos WHERE id = $1`

	var cargo models.Cargo
	err := r.DB().QueryRowContext(ctx, query, id).Scan(
		&cargo.ID, &cargo.Nombre, &cargo.CreatedAt, &cargo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrCargoNotFound
		}
		return nil, err
	}

	return &cargo, nil
}

func (r *cargoRepository) List(ctx context.Context) ([]models.Cargo, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM cargos ORDER BY nombre`

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cargos []models.Cargo
	for rows.Next() {
		var cargo models.Cargo
		if err := rows.Scan(&cargo.ID, &cargo.Nombre, &cargo.CreatedAt, &cargo.UpdatedAt); err != nil {
			return nil, err
		}
		cargos = append(cargos, cargo)
	}

	return cargos, rows.Err()
}

func (r *cargoRepository) Update(ctx context.Context, cargo *models.Cargo) error {
	query := `
		UPDATE cargos SET nombre = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.DB().QueryRowContext(ctx, query, cargo.ID, cargo.Nombre).Scan(&cargo.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrCargoNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrCargoExists
		}
		return err
	}

	return nil
}

func (r *cargoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrCargoNotFound
	}

	return nil
}
