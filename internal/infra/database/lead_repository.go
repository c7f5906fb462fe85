package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const leadColumns = `id, name, lastname, email, company, phone, interest, message, source, status, notes, converted_to_contact_id, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, lastname, email, company, phone, interest, message, source, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Lastname,
		lead.Email,
		lead.Company,
		lead.Phone,
		lead.Interest,
		lead.Message,
		lead.Source,
		lead.Status,
		lead.Notes,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrLeadAlreadyExists
		}
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, f entity.LeadFilter) ([]*entity.Lead, int, error) {
	page := f.Page.Normalize()
	query := `
		SELECT ` + leadColumns + `, COUNT(*) OVER()
		FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR source = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR lastname ILIKE '%' || $3 || '%'
		       OR email ILIKE '%' || $3 || '%' OR company ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		OFFSET $4 LIMIT $5
	`

	rows, err := r.DB.QueryContext(ctx, query, f.Status, f.Source, f.Query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	total := 0
	for rows.Next() {
		lead, err := scanLead(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, total, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, id string, p entity.LeadPatch, activity *entity.Activity) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			name = COALESCE($2, name),
			lastname = COALESCE($3, lastname),
			email = COALESCE($4, email),
			company = COALESCE($5, company),
			phone = COALESCE($6, phone),
			interest = COALESCE($7, interest),
			message = COALESCE($8, message),
			source = COALESCE($9, source),
			status = COALESCE($10, status),
			notes = COALESCE($11, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	var lead *entity.Lead
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		lead, err = scanLead(tx.QueryRowContext(ctx, query, id,
			p.Name, p.Lastname, p.Email, p.Company, p.Phone,
			p.Interest, p.Message, p.Source, p.Status, p.Notes,
		))
		if err != nil {
			return err
		}
		if activity != nil {
			return insertActivity(ctx, tx, leadActivities, "lead_id", activity)
		}
		return nil
	})
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, entity.ErrLeadNotFound
		case isUniqueViolation(err):
			return nil, entity.ErrLeadAlreadyExists
		}
		return nil, fmt.Errorf("erro ao atualizar lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM leads WHERE id = $1`, id, entity.ErrLeadNotFound)
}

func (r *LeadRepository) LinkContact(ctx context.Context, leadID, contactID, status string, activity *entity.Activity) error {
	query := `
		UPDATE leads
		SET converted_to_contact_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND converted_to_contact_id IS NULL
	`

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, leadID, contactID, status)
		if err != nil {
			return fmt.Errorf("erro ao vincular contato: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists bool
			if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)`, leadID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return entity.ErrLeadNotFound
			}
			return entity.ErrLeadAlreadyConverted
		}
		if activity != nil {
			return insertActivity(ctx, tx, leadActivities, "lead_id", activity)
		}
		return nil
	})
}

func (r *LeadRepository) CountByStage(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar leads: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}

func (r *LeadRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

// scanLead reads leadColumns plus any trailing destinations (e.g. a window count).
func scanLead(row rowScanner, extra ...any) (*entity.Lead, error) {
	var l entity.Lead
	var converted sql.NullString
	dest := []any{
		&l.ID, &l.Name, &l.Lastname, &l.Email, &l.Company, &l.Phone, &l.Interest,
		&l.Message, &l.Source, &l.Status, &l.Notes, &converted, &l.CreatedAt, &l.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	l.ConvertedToContactID = stringPtr(converted)
	return &l, nil
}
