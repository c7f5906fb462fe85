package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const testimonialColumns = `id, author, role, company, quote, avatar_url, published, sort_order, created_at`

type TestimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *entity.Testimonial) error {
	query := `INSERT INTO testimonials (` + testimonialColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.Author, t.Role, t.Company, t.Quote, t.AvatarURL, t.Published, t.SortOrder, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar depoimento: %w", err)
	}
	return nil
}

func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*entity.Testimonial, error) {
	t, err := scanTestimonial(r.DB.QueryRowContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("erro ao buscar depoimento: %w", err)
	}
	return t, nil
}

func (r *TestimonialRepository) List(ctx context.Context, publishedOnly bool, page entity.Page) ([]*entity.Testimonial, int, error) {
	page = page.Normalize()
	query := `
		SELECT ` + testimonialColumns + `, COUNT(*) OVER()
		FROM testimonials
		WHERE (NOT $1 OR published)
		ORDER BY sort_order, created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, publishedOnly, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar depoimentos: %w", err)
	}
	defer rows.Close()

	items := []*entity.Testimonial{}
	total := 0
	for rows.Next() {
		t, err := scanTestimonial(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}

func (r *TestimonialRepository) Update(ctx context.Context, id string, p entity.TestimonialPatch) (*entity.Testimonial, error) {
	query := `
		UPDATE testimonials SET
			author = COALESCE($2, author),
			role = COALESCE($3, role),
			company = COALESCE($4, company),
			quote = COALESCE($5, quote),
			avatar_url = COALESCE($6, avatar_url),
			published = COALESCE($7, published),
			sort_order = COALESCE($8, sort_order)
		WHERE id = $1
		RETURNING ` + testimonialColumns

	t, err := scanTestimonial(r.DB.QueryRowContext(ctx, query, id,
		p.Author, p.Role, p.Company, p.Quote, p.AvatarURL, p.Published, p.SortOrder,
	))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("erro ao atualizar depoimento: %w", err)
	}
	return t, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM testimonials WHERE id = $1`, id, entity.ErrTestimonialNotFound)
}

func scanTestimonial(row rowScanner, extra ...any) (*entity.Testimonial, error) {
	var t entity.Testimonial
	dest := []any{&t.ID, &t.Author, &t.Role, &t.Company, &t.Quote, &t.AvatarURL, &t.Published, &t.SortOrder, &t.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &t, nil
}
