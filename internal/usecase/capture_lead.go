package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

type CaptureLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Events EventPublisher
}

func NewCaptureLeadUseCase(repo entity.LeadRepositoryInterface, events EventPublisher) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Repo: repo, Events: events}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	lead := entity.NewLead(input.Name, input.Email, input.Source)
	lead.Lastname = strings.TrimSpace(input.Lastname)
	lead.Company = strings.TrimSpace(input.Company)
	lead.Phone = strings.TrimSpace(input.Phone)
	lead.Interest = strings.TrimSpace(input.Interest)
	lead.Message = strings.TrimSpace(input.Message)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, Classify(err)
	}

	if uc.Events != nil {
		event := queue.LeadEvent{
			Type:       queue.EventLeadCaptured,
			LeadID:     lead.ID,
			Name:       strings.TrimSpace(lead.Name + " " + lead.Lastname),
			Email:      lead.Email,
			Company:    lead.Company,
			Phone:      lead.Phone,
			Interest:   lead.Interest,
			Message:    lead.Message,
			Source:     lead.Source,
			OccurredAt: time.Now(),
		}
		if err := uc.Events.PublishLeadEvent(ctx, event); err != nil {
			log.Printf("⚠️ Lead %s salvo, mas falha ao publicar evento: %v", lead.ID, err)
		}
	}

	return lead, nil
}
