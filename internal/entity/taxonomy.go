package entity

import (
	"context"

	"github.com/google/uuid"
)

// Taxonomy is a catalog label: course categories and modalities share this shape.
type Taxonomy struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

func NewTaxonomy(slug, name string) *Taxonomy {
	return &Taxonomy{
		ID:     uuid.New().String(),
		Slug:   slug,
		Name:   name,
		Active: true,
	}
}

type TaxonomyPatch struct {
	Slug      *string `json:"slug"`
	Name      *string `json:"name"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

type TaxonomyRepositoryInterface interface {
	Create(ctx context.Context, t *Taxonomy) error
	List(ctx context.Context, activeOnly bool) ([]*Taxonomy, error)
	Update(ctx context.Context, id string, patch TaxonomyPatch) (*Taxonomy, error)
	Delete(ctx context.Context, id string) error
}
