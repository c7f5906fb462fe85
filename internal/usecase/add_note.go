package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

// AddNoteUseCase records a manual comment: from == to == the entity's current stage.
type AddNoteUseCase struct {
	CurrentStage func(ctx context.Context, id string) (string, error)
	Activities   entity.ActivityRepositoryInterface
}

func NewAddLeadNoteUseCase(leads entity.LeadRepositoryInterface, activities entity.ActivityRepositoryInterface) *AddNoteUseCase {
	return &AddNoteUseCase{
		CurrentStage: func(ctx context.Context, id string) (string, error) {
			lead, err := leads.FindByID(ctx, id)
			if err != nil {
				return "", err
			}
			return lead.Status, nil
		},
		Activities: activities,
	}
}

func NewAddDealNoteUseCase(deals entity.DealRepositoryInterface, activities entity.ActivityRepositoryInterface) *AddNoteUseCase {
	return &AddNoteUseCase{
		CurrentStage: func(ctx context.Context, id string) (string, error) {
			deal, err := deals.FindByID(ctx, id)
			if err != nil {
				return "", err
			}
			return deal.Stage, nil
		},
		Activities: activities,
	}
}

func (uc *AddNoteUseCase) Execute(ctx context.Context, id string, input NoteInput) (*entity.Activity, error) {
	note := strings.TrimSpace(input.Note)
	if note == "" {
		return nil, NewValidationError([]ValidationError{{"note", "is required"}})
	}

	stage, err := uc.CurrentStage(ctx, id)
	if err != nil {
		return nil, Classify(err)
	}

	activity := entity.NewNote(id, stage, note)
	if err := uc.Activities.Record(ctx, activity); err != nil {
		return nil, Classify(err)
	}
	return activity, nil
}
