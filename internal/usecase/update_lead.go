package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

type UpdateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
	// OnStageChange, when set, is called after a stage change is stored.
	OnStageChange func(to string)
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo}
}

// Execute applies a partial update. A status different from the stored one
// produces exactly one activity row (old, new); a note sent without a status
// change is stored as a note on the current stage.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	patch := input.LeadPatch

	var errs []ValidationError
	patch.Name = trimmed(patch.Name)
	if patch.Name != nil && *patch.Name == "" {
		errs = append(errs, ValidationError{"name", "must not be empty"})
	}
	if patch.Email != nil {
		errs = appendEmailErrors(errs, *patch.Email)
		email := entity.NormalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		if status == "" {
			errs = append(errs, ValidationError{"status", "must not be empty"})
		}
		patch.Status = &status
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	current, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, Classify(err)
	}

	activity := updateActivity(id, current.Status, patch.Status, input.Note)

	lead, err := uc.Repo.Update(ctx, id, patch, activity)
	if err != nil {
		return nil, Classify(err)
	}
	if activity != nil && !activity.IsNote() && uc.OnStageChange != nil {
		uc.OnStageChange(activity.ToStage)
	}
	return lead, nil
}

// updateActivity is the stage change when the stage moves, otherwise a note
// on the current stage when one was sent, otherwise nil.
func updateActivity(id, current string, next *string, note string) *entity.Activity {
	note = strings.TrimSpace(note)
	if next != nil {
		if a := entity.NewStageChange(id, current, *next, note); a != nil {
			return a
		}
	}
	if note == "" {
		return nil
	}
	return entity.NewNote(id, current, note)
}
