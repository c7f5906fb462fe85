package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

// TaxonomyRepository backs the categories and modalities tables.
type TaxonomyRepository struct {
	DB    *sql.DB
	table string
}

func NewCategoryRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db, table: "categories"}
}

func NewModalityRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db, table: "modalities"}
}

func (r *TaxonomyRepository) Create(ctx context.Context, t *entity.Taxonomy) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, slug, name, sort_order, active) VALUES ($1, $2, $3, $4, $5)`, r.table)
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.Slug, t.Name, t.SortOrder, t.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrSlugAlreadyExists
		}
		return fmt.Errorf("erro ao criar %s: %w", r.table, err)
	}
	return nil
}

func (r *TaxonomyRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Taxonomy, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, sort_order, active
		FROM %s
		WHERE (NOT $1 OR active)
		ORDER BY sort_order, name`, r.table)

	rows, err := r.DB.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar %s: %w", r.table, err)
	}
	defer rows.Close()

	items := []*entity.Taxonomy{}
	for rows.Next() {
		var t entity.Taxonomy
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.SortOrder, &t.Active); err != nil {
			return nil, err
		}
		items = append(items, &t)
	}
	return items, rows.Err()
}

func (r *TaxonomyRepository) Update(ctx context.Context, id string, p entity.TaxonomyPatch) (*entity.Taxonomy, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET
			slug = COALESCE($2, slug),
			name = COALESCE($3, name),
			sort_order = COALESCE($4, sort_order),
			active = COALESCE($5, active)
		WHERE id = $1
		RETURNING id, slug, name, sort_order, active`, r.table)

	var t entity.Taxonomy
	err := r.DB.QueryRowContext(ctx, query, id, p.Slug, p.Name, p.SortOrder, p.Active).
		Scan(&t.ID, &t.Slug, &t.Name, &t.SortOrder, &t.Active)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, entity.ErrTaxonomyNotFound
		case isUniqueViolation(err):
			return nil, entity.ErrSlugAlreadyExists
		}
		return nil, fmt.Errorf("erro ao atualizar %s: %w", r.table, err)
	}
	return &t, nil
}

func (r *TaxonomyRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id, entity.ErrTaxonomyNotFound)
}
