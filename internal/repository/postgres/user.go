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

type userRepository struct {
	repository.BaseRepository
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

const userColumns = `id, dni, nombres, apellidos, email, password, role_id, area_id, cargo_id,
	estado, created_at, updated_at, deleted_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.DNI,
		&user.Nombres,
		&user.Apellidos,
		&user.Email,
		&user.Password,
		&user.RoleID,
		&user.AreaID,
		&user.CargoID,
		&user.Estado,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Estado == "" {
		user.Estado = models.UserStateActive
	}

	query := `
		INSERT INTO users (id, dni, nombres, apellidos, email, password, role_id, area_id, cargo_id, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.DB().QueryRowContext(ctx, query,
		user.ID,
		user.DNI,
		user.Nombres,
		user.Apellidos,
		user.Email,
		user.Password,
		user.RoleID,
		user.AreaID,
		user.CargoID,
		user.Estado,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return repository.ErrEmailExists
			}
			if strings.Contains(pqErr.Constraint, "dni") {
				return repository.ErrDNIExists
			}
			return repository.ErrDuplicateEntry
		}
		return err
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)
	return scanUser(r.DB().QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`, userColumns)
	return scanUser(r.DB().QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByDNI(ctx context.Context, dni string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE dni = $1 AND deleted_at IS NULL`, userColumns)
	return scanUser(r.DB().QueryRowContext(ctx, query, dni))
}

func (r *userRepository) GetByEmailOrDNI(ctx context.Context, identifier string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE (LOWER(email) = LOWER($1) OR dni = $1) AND deleted_at IS NULL
		LIMIT 1`, userColumns)
	return scanUser(r.DB().QueryRowContext(ctx, query, identifier))
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	var conditions []string
	var params []interface{}
	paramCount := 1

	query := fmt.Sprintf(`SELECT %s FROM users`, userColumns)

	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if filter.Estado != nil {
		conditions = append(conditions, fmt.Sprintf("estado = $%d", paramCount))
		params = append(params, *filter.Estado)
		paramCount++
	}
	if filter.RoleID != nil {
		conditions = append(conditions, fmt.Sprintf("role_id = $%d", paramCount))
		params = append(params, *filter.RoleID)
		paramCount++
	}
	if filter.AreaID != nil {
		conditions = append(conditions, fmt.Sprintf("area_id = $%d", paramCount))
		params = append(params, *filter.AreaID)
		paramCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY apellidos, nombres"

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, *filter.Limit)
		paramCount++
	}
	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", paramCount)
		params = append(params, *filter.Offset)
	}

	rows, err := r.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET nombres = $2, apellidos = $3, email = $4, password = $5,
			role_id = $6, area_id = $7, cargo_id = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.DB().QueryRowContext(ctx, query,
		user.ID,
		user.Nombres,
		user.Apellidos,
		user.Email,
		user.Password,
		user.RoleID,
		user.AreaID,
		user.CargoID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrUserNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrEmailExists
		}
		return err
	}

	return nil
}

func (r *userRepository) SetEstado(ctx context.Context, id uuid.UUID, estado string) error {
	query := `
		UPDATE users SET estado = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB().ExecContext(ctx, query, id, estado)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB().ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
