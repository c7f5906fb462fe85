package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

const dealCreatedNote = "Negociación creada"

type CreateDealUseCase struct {
	Deals    entity.DealRepositoryInterface
	Contacts entity.ContactRepositoryInterface
}

func NewCreateDealUseCase(deals entity.DealRepositoryInterface, contacts entity.ContactRepositoryInterface) *CreateDealUseCase {
	return &CreateDealUseCase{Deals: deals, Contacts: contacts}
}

func (uc *CreateDealUseCase) Execute(ctx context.Context, input CreateDealInput) (*entity.Deal, error) {
	if errs := ValidateCreateDealInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	deal := entity.NewDeal(input.Title, input.Stage)
	deal.Amount = input.Amount
	deal.Notes = strings.TrimSpace(input.Notes)
	if c := strings.TrimSpace(input.Currency); c != "" {
		deal.Currency = strings.ToUpper(c)
	}
	if input.ExpectedCloseDate != "" {
		deal.ExpectedCloseDate, _ = parseDate(input.ExpectedCloseDate)
	}
	if id := strings.TrimSpace(input.ContactID); id != "" {
		if err := ensureContact(ctx, uc.Contacts, id); err != nil {
			return nil, err
		}
		deal.ContactID = &id
	}

	activity := entity.NewCreation(deal.ID, deal.Stage, dealCreatedNote)
	if err := uc.Deals.Create(ctx, deal, activity); err != nil {
		return nil, Classify(err)
	}
	return deal, nil
}

type UpdateDealUseCase struct {
	Deals    entity.DealRepositoryInterface
	Contacts entity.ContactRepositoryInterface
	Events   EventPublisher

	OnStageChange func(to string)
}

func NewUpdateDealUseCase(deals entity.DealRepositoryInterface, contacts entity.ContactRepositoryInterface, events EventPublisher) *UpdateDealUseCase {
	return &UpdateDealUseCase{Deals: deals, Contacts: contacts, Events: events}
}

// Execute applies a partial update; a stage change is logged as one activity row.
func (uc *UpdateDealUseCase) Execute(ctx context.Context, id string, input UpdateDealInput) (*entity.Deal, error) {
	if errs := ValidateUpdateDealInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	current, err := uc.Deals.FindByID(ctx, id)
	if err != nil {
		return nil, Classify(err)
	}

	patch := entity.DealPatch{
		Title:  trimmed(input.Title),
		Stage:  trimmed(input.Stage),
		Amount: input.Amount,
		Notes:  input.Notes,
	}
	if input.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*input.Currency))
		patch.Currency = &c
	}
	if input.ContactID != nil {
		if cid := strings.TrimSpace(*input.ContactID); cid == "" {
			patch.ClearContact = true
		} else {
			if err := ensureContact(ctx, uc.Contacts, cid); err != nil {
				return nil, err
			}
			patch.ContactID = &cid
		}
	}
	if input.ExpectedCloseDate != nil {
		if *input.ExpectedCloseDate == "" {
			patch.ClearCloseDate = true
		} else {
			patch.ExpectedCloseDate, _ = parseDate(*input.ExpectedCloseDate)
		}
	}

	activity := updateActivity(id, current.Stage, patch.Stage, input.Note)

	deal, err := uc.Deals.Update(ctx, id, patch, activity)
	if err != nil {
		return nil, Classify(err)
	}

	stageChanged := activity != nil && !activity.IsNote()
	if stageChanged && uc.OnStageChange != nil {
		uc.OnStageChange(activity.ToStage)
	}
	if stageChanged && uc.Events != nil {
		event := queue.DealEvent{
			Type:       queue.EventDealStageChanged,
			DealID:     deal.ID,
			Title:      deal.Title,
			FromStage:  activity.FromStage,
			ToStage:    activity.ToStage,
			Amount:     deal.Amount,
			Currency:   deal.Currency,
			OccurredAt: time.Now(),
		}
		if err := uc.Events.PublishDealEvent(ctx, event); err != nil {
			log.Printf("⚠️ Negociação %s atualizada, mas falha ao publicar evento: %v", deal.ID, err)
		}
	}

	return deal, nil
}

func ensureContact(ctx context.Context, contacts entity.ContactRepositoryInterface, id string) error {
	if _, err := contacts.FindByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			return NewValidationError([]ValidationError{{"contact_id", "does not exist"}})
		}
		return Classify(err)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
