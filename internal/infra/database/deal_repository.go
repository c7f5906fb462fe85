package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const dealColumns = `id, title, contact_id, stage, amount, currency, expected_close_date, notes, created_at, updated_at`

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

func (r *DealRepository) Create(ctx context.Context, d *entity.Deal, activity *entity.Activity) error {
	query := `
		INSERT INTO deals (id, title, contact_id, stage, amount, currency, expected_close_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			d.ID,
			d.Title,
			d.ContactID,
			d.Stage,
			d.Amount,
			d.Currency,
			d.ExpectedCloseDate,
			d.Notes,
			d.CreatedAt,
			d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("erro ao criar negociação: %w", err)
		}
		if activity != nil {
			return insertActivity(ctx, tx, dealActivities, "deal_id", activity)
		}
		return nil
	})
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	d, err := scanDeal(r.DB.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrDealNotFound
		}
		return nil, fmt.Errorf("erro ao buscar negociação: %w", err)
	}
	return d, nil
}

func (r *DealRepository) List(ctx context.Context, f entity.DealFilter) ([]*entity.Deal, int, error) {
	page := f.Page.Normalize()
	query := `
		SELECT ` + dealColumns + `, COUNT(*) OVER()
		FROM deals
		WHERE ($1 = '' OR stage = $1)
		  AND ($2 = '' OR contact_id::text = $2)
		  AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR notes ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		OFFSET $4 LIMIT $5
	`

	rows, err := r.DB.QueryContext(ctx, query, f.Stage, f.ContactID, f.Query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar negociações: %w", err)
	}
	defer rows.Close()

	deals := []*entity.Deal{}
	total := 0
	for rows.Next() {
		d, err := scanDeal(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear negociação: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, total, rows.Err()
}

func (r *DealRepository) Update(ctx context.Context, id string, p entity.DealPatch, activity *entity.Activity) (*entity.Deal, error) {
	query := `
		UPDATE deals SET
			title = COALESCE($2, title),
			contact_id = CASE WHEN $4 THEN NULL ELSE COALESCE($3, contact_id) END,
			stage = COALESCE($5, stage),
			amount = COALESCE($6, amount),
			currency = COALESCE($7, currency),
			expected_close_date = CASE WHEN $9 THEN NULL ELSE COALESCE($8, expected_close_date) END,
			notes = COALESCE($10, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + dealColumns

	var deal *entity.Deal
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		deal, err = scanDeal(tx.QueryRowContext(ctx, query, id,
			p.Title, p.ContactID, p.ClearContact, p.Stage, p.Amount,
			p.Currency, p.ExpectedCloseDate, p.ClearCloseDate, p.Notes,
		))
		if err != nil {
			return err
		}
		if activity != nil {
			return insertActivity(ctx, tx, dealActivities, "deal_id", activity)
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrDealNotFound
		}
		return nil, fmt.Errorf("erro ao atualizar negociação: %w", err)
	}
	return deal, nil
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM deals WHERE id = $1`, id, entity.ErrDealNotFound)
}

func (r *DealRepository) TotalsByStage(ctx context.Context) ([]entity.StageTotal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT stage, COUNT(*), COALESCE(SUM(amount), 0)
		FROM deals
		GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar negociações: %w", err)
	}
	defer rows.Close()

	totals := []entity.StageTotal{}
	for rows.Next() {
		var t entity.StageTotal
		if err := rows.Scan(&t.Stage, &t.Count, &t.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func scanDeal(row rowScanner, extra ...any) (*entity.Deal, error) {
	var d entity.Deal
	var contactID sql.NullString
	var closeDate sql.NullTime
	dest := []any{
		&d.ID, &d.Title, &contactID, &d.Stage, &d.Amount, &d.Currency,
		&closeDate, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	d.ContactID = stringPtr(contactID)
	if closeDate.Valid {
		t := closeDate.Time
		d.ExpectedCloseDate = &t
	}
	return &d, nil
}
