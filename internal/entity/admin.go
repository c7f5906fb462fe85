package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAdminUser(email, name, passwordHash string) *AdminUser {
	return &AdminUser{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}

type AdminRepositoryInterface interface {
	Create(ctx context.Context, u *AdminUser) error
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
}
