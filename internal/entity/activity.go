package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only audit row for a lead or a deal.
// FromStage == ToStage means a manual note; an empty FromStage marks creation.
type Activity struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entity_id"`
	FromStage string    `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStageChange returns nil when the stage did not change.
func NewStageChange(entityID, from, to, note string) *Activity {
	if from == to {
		return nil
	}
	return newActivity(entityID, from, to, note)
}

func NewNote(entityID, stage, note string) *Activity {
	return newActivity(entityID, stage, stage, note)
}

func NewCreation(entityID, stage, note string) *Activity {
	return newActivity(entityID, "", stage, note)
}

func newActivity(entityID, from, to, note string) *Activity {
	return &Activity{
		ID:        uuid.New().String(),
		EntityID:  entityID,
		FromStage: from,
		ToStage:   to,
		Note:      note,
		CreatedAt: time.Now(),
	}
}

func (a *Activity) IsNote() bool {
	return a.FromStage == a.ToStage
}

type ActivityRepositoryInterface interface {
	Record(ctx context.Context, a *Activity) error
	// ListByEntity returns the newest rows first.
	ListByEntity(ctx context.Context, entityID string) ([]*Activity, error)
}
