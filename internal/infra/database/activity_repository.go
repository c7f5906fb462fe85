package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

const (
	leadActivities = "lead_activities"
	dealActivities = "deal_activities"
)

// ActivityRepository serves lead_activities and deal_activities; both share one shape.
type ActivityRepository struct {
	DB    *sql.DB
	table string
	fk    string
}

func NewLeadActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db, table: leadActivities, fk: "lead_id"}
}

func NewDealActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db, table: dealActivities, fk: "deal_id"}
}

func (r *ActivityRepository) Record(ctx context.Context, a *entity.Activity) error {
	return insertActivity(ctx, r.DB, r.table, r.fk, a)
}

func (r *ActivityRepository) ListByEntity(ctx context.Context, entityID string) ([]*entity.Activity, error) {
	query := fmt.Sprintf(`
		SELECT id, %[2]s, COALESCE(from_stage, ''), to_stage, note, created_at
		FROM %[1]s
		WHERE %[2]s = $1
		ORDER BY created_at DESC, id DESC`, r.table, r.fk)

	rows, err := r.DB.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar atividades: %w", err)
	}
	defer rows.Close()

	activities := []*entity.Activity{}
	for rows.Next() {
		a := &entity.Activity{}
		if err := rows.Scan(&a.ID, &a.EntityID, &a.FromStage, &a.ToStage, &a.Note, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear atividade: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func insertActivity(ctx context.Context, q queryer, table, fk string, a *entity.Activity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, from_stage, to_stage, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, table, fk)

	_, err := q.ExecContext(ctx, query,
		a.ID,
		a.EntityID,
		nullString(a.FromStage),
		a.ToStage,
		a.Note,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao registrar atividade: %w", err)
	}
	return nil
}
