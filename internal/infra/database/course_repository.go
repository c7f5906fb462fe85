package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/xavierca1/capacita-crm/internal/entity"
)

const courseColumns = `id, slug, title, summary, description, category_slug, modality_slug, duration_hours, price, topics, image_url, active, sort_order, created_at, updated_at`

type CourseRepository struct {
	DB *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Slug,
		c.Title,
		c.Summary,
		c.Description,
		c.CategorySlug,
		c.ModalitySlug,
		c.DurationHours,
		c.Price,
		pq.Array(c.Topics),
		c.ImageURL,
		c.Active,
		c.SortOrder,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrSlugAlreadyExists
		}
		return fmt.Errorf("erro ao criar curso: %w", err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.findOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
}

func (r *CourseRepository) FindActiveBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	return r.findOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE slug = $1 AND active`, slug)
}

func (r *CourseRepository) findOne(ctx context.Context, query, arg string) (*entity.Course, error) {
	c, err := scanCourse(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrCourseNotFound
		}
		return nil, fmt.Errorf("erro ao buscar curso: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context, f entity.CourseFilter) ([]*entity.Course, int, error) {
	page := f.Page.Normalize()
	query := `
		SELECT ` + courseColumns + `, COUNT(*) OVER()
		FROM courses
		WHERE (NOT $1 OR active)
		  AND ($2 = '' OR category_slug = $2)
		  AND ($3 = '' OR modality_slug = $3)
		  AND ($4 = '' OR title ILIKE '%' || $4 || '%' OR summary ILIKE '%' || $4 || '%')
		ORDER BY sort_order, title
		OFFSET $5 LIMIT $6
	`

	rows, err := r.DB.QueryContext(ctx, query, f.ActiveOnly, f.Category, f.Modality, f.Query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar cursos: %w", err)
	}
	defer rows.Close()

	courses := []*entity.Course{}
	total := 0
	for rows.Next() {
		c, err := scanCourse(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear curso: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, id string, p entity.CoursePatch) (*entity.Course, error) {
	query := `
		UPDATE courses SET
			slug = COALESCE($2, slug),
			title = COALESCE($3, title),
			summary = COALESCE($4, summary),
			description = COALESCE($5, description),
			category_slug = COALESCE($6, category_slug),
			modality_slug = COALESCE($7, modality_slug),
			duration_hours = COALESCE($8, duration_hours),
			price = COALESCE($9, price),
			topics = COALESCE($10, topics),
			image_url = COALESCE($11, image_url),
			active = COALESCE($12, active),
			sort_order = COALESCE($13, sort_order),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + courseColumns

	var topics any
	if p.Topics != nil {
		topics = pq.Array(*p.Topics)
	}

	c, err := scanCourse(r.DB.QueryRowContext(ctx, query, id,
		p.Slug, p.Title, p.Summary, p.Description, p.CategorySlug, p.ModalitySlug,
		p.DurationHours, p.Price, topics, p.ImageURL, p.Active, p.SortOrder,
	))
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, entity.ErrCourseNotFound
		case isUniqueViolation(err):
			return nil, entity.ErrSlugAlreadyExists
		}
		return nil, fmt.Errorf("erro ao atualizar curso: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM courses WHERE id = $1`, id, entity.ErrCourseNotFound)
}

func scanCourse(row rowScanner, extra ...any) (*entity.Course, error) {
	var c entity.Course
	dest := []any{
		&c.ID, &c.Slug, &c.Title, &c.Summary, &c.Description, &c.CategorySlug,
		&c.ModalitySlug, &c.DurationHours, &c.Price, pq.Array(&c.Topics),
		&c.ImageURL, &c.Active, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
	return &c, nil
}
