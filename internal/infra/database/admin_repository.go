package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

// Create upserts by email so re-running the seed command rotates the password.
func (r *AdminRepository) Create(ctx context.Context, u *entity.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao salvar admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var u entity.AdminUser
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM admin_users WHERE email = $1`,
		entity.NormalizeEmail(email),
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAdminNotFound
		}
		return nil, fmt.Errorf("erro ao buscar admin: %w", err)
	}
	return &u, nil
}
