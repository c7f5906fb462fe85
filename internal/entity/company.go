package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Company is a partner logo shown on the public site.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	Active    bool      `json:"active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCompany(name, slug string) *Company {
	return &Company{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

type CompanyPatch struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	LogoURL   *string `json:"logo_url"`
	Website   *string `json:"website"`
	Active    *bool   `json:"active"`
	SortOrder *int    `json:"sort_order"`
}

type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context, activeOnly bool, page Page) ([]*Company, int, error)
	Update(ctx context.Context, id string, patch CompanyPatch) (*Company, error)
	Delete(ctx context.Context, id string) error
}
