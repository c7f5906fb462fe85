package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const contactColumns = `id, name, lastname, email, company, phone, position, notes, lead_id, created_at, updated_at`

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, lastname, email, company, phone, position, notes, lead_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Lastname,
		c.Email,
		c.Company,
		c.Phone,
		c.Position,
		c.Notes,
		c.LeadID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrContactEmailExists
		}
		return fmt.Errorf("erro ao criar contato: %w", err)
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	return r.findOne(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	return r.findOne(ctx, `SELECT `+contactColumns+` FROM contacts WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *ContactRepository) findOne(ctx context.Context, query string, arg string) (*entity.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrContactNotFound
		}
		return nil, fmt.Errorf("erro ao buscar contato: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context, f entity.ContactFilter) ([]*entity.Contact, int, error) {
	page := f.Page.Normalize()
	query := `
		SELECT ` + contactColumns + `, COUNT(*) OVER()
		FROM contacts
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR lastname ILIKE '%' || $1 || '%'
		       OR email ILIKE '%' || $1 || '%' OR company ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, f.Query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar contatos: %w", err)
	}
	defer rows.Close()

	contacts := []*entity.Contact{}
	total := 0
	for rows.Next() {
		c, err := scanContact(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear contato: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, id string, p entity.ContactPatch) (*entity.Contact, error) {
	query := `
		UPDATE contacts SET
			name = COALESCE($2, name),
			lastname = COALESCE($3, lastname),
			email = COALESCE($4, email),
			company = COALESCE($5, company),
			phone = COALESCE($6, phone),
			position = COALESCE($7, position),
			notes = COALESCE($8, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + contactColumns

	c, err := scanContact(r.DB.QueryRowContext(ctx, query, id,
		p.Name, p.Lastname, p.Email, p.Company, p.Phone, p.Position, p.Notes,
	))
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, entity.ErrContactNotFound
		case isUniqueViolation(err):
			return nil, entity.ErrContactEmailExists
		}
		return nil, fmt.Errorf("erro ao atualizar contato: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM contacts WHERE id = $1`, id, entity.ErrContactNotFound)
}

func (r *ContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}

func scanContact(row rowScanner, extra ...any) (*entity.Contact, error) {
	var c entity.Contact
	var leadID sql.NullString
	dest := []any{
		&c.ID, &c.Name, &c.Lastname, &c.Email, &c.Company, &c.Phone,
		&c.Position, &c.Notes, &leadID, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.LeadID = stringPtr(leadID)
	return &c, nil
}
