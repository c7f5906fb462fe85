package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const companyColumns = `id, name, slug, logo_url, website, active, sort_order, created_at`

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.LogoURL, c.Website, c.Active, c.SortOrder, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrSlugAlreadyExists
		}
		return fmt.Errorf("erro ao criar empresa: %w", err)
	}
	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.DB.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) List(ctx context.Context, activeOnly bool, page entity.Page) ([]*entity.Company, int, error) {
	page = page.Normalize()
	query := `
		SELECT ` + companyColumns + `, COUNT(*) OVER()
		FROM companies
		WHERE (NOT $1 OR active)
		ORDER BY sort_order, name
		OFFSET $2 LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, activeOnly, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar empresas: %w", err)
	}
	defer rows.Close()

	companies := []*entity.Company{}
	total := 0
	for rows.Next() {
		c, err := scanCompany(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, id string, p entity.CompanyPatch) (*entity.Company, error) {
	query := `
		UPDATE companies SET
			name = COALESCE($2, name),
			slug = COALESCE($3, slug),
			logo_url = COALESCE($4, logo_url),
			website = COALESCE($5, website),
			active = COALESCE($6, active),
			sort_order = COALESCE($7, sort_order)
		WHERE id = $1
		RETURNING ` + companyColumns

	c, err := scanCompany(r.DB.QueryRowContext(ctx, query, id, p.Name, p.Slug, p.LogoURL, p.Website, p.Active, p.SortOrder))
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, entity.ErrCompanyNotFound
		case isUniqueViolation(err):
			return nil, entity.ErrSlugAlreadyExists
		}
		return nil, fmt.Errorf("erro ao atualizar empresa: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM companies WHERE id = $1`, id, entity.ErrCompanyNotFound)
}

func scanCompany(row rowScanner, extra ...any) (*entity.Company, error) {
	var c entity.Company
	dest := []any{&c.ID, &c.Name, &c.Slug, &c.LogoURL, &c.Website, &c.Active, &c.SortOrder, &c.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}
