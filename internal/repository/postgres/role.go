package postgres

import (
	"context"
	"database/sql"
	"muniportal/internal/models"
	"muniportal/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type roleRepository struct {
	repository.BaseRepository
}

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}

	query := `
		INSERT INTO roles (id, name, is_protected)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.DB().QueryRowContext(ctx, query, role.ID, role.Name, role.IsProtected).
		Scan(&role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrRoleExists
		}
		return err
	}

	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles WHERE id = $1`

	var role models.Role
	err := r.DB().QueryRowContext(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.IsProtected, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrRoleNotFound
		}
		return nil, err
	}

	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles WHERE LOWER(name) = LOWER($1)`

	var role models.Role
	err := r.DB().QueryRowContext(ctx, query, name).Scan(
		&role.ID, &role.Name, &role.IsProtected, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrRoleNotFound
		}
		return nil, err
	}

	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles ORDER BY name`

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.IsProtected, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	existing, err := r.GetByID(ctx, role.ID)
	if err != nil {
		return err
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}

	query := `
		UPDATE roles SET name = $2, is_protected = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err = r.DB().QueryRowContext(ctx, query, role.ID, role.Name, role.IsProtected).Scan(&role.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrRoleExists
		}
		return err
	}

	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}

	var inUse int
	if err := r.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role_id = $1 AND deleted_at IS NULL`, id,
	).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return repository.ErrRoleInUse
	}

	_, err = r.DB().ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	return err
}
