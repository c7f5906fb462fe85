package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

const conversionNote = "Convertido en contacto"

type ConvertLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Contacts entity.ContactRepositoryInterface
	Events   EventPublisher
}

func NewConvertLeadUseCase(
	leads entity.LeadRepositoryInterface,
	contacts entity.ContactRepositoryInterface,
	events EventPublisher,
) *ConvertLeadUseCase {
	return &ConvertLeadUseCase{Leads: leads, Contacts: contacts, Events: events}
}

// Execute copies the lead into a contact, or links it to the contact that
// already owns the same (case-insensitive) email. A lead converts only once.
func (uc *ConvertLeadUseCase) Execute(ctx context.Context, leadID string) (*ConvertLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, Classify(err)
	}
	if lead.IsConverted() {
		return nil, Classify(entity.ErrLeadAlreadyConverted)
	}

	activity := entity.NewStageChange(lead.ID, lead.Status, entity.StageContacted, conversionNote)

	existing, err := uc.Contacts.FindByEmail(ctx, lead.Email)
	if err != nil && !errors.Is(err, entity.ErrContactNotFound) {
		return nil, Classify(err)
	}

	out := &ConvertLeadOutput{}
	if existing != nil {
		if err := uc.Leads.LinkContact(ctx, lead.ID, existing.ID, entity.StageContacted, activity); err != nil {
			return nil, Classify(err)
		}
		out.Contact = existing
		out.Merged = true
	} else {
		contact := entity.ContactFromLead(lead)

		txn := NewTransaction()
		txn.AddOperation("create_contact", func(ctx context.Context) error {
			return uc.Contacts.Create(ctx, contact)
		})
		txn.AddCompensation("delete_contact", func(ctx context.Context) error {
			return uc.Contacts.Delete(ctx, contact.ID)
		})
		txn.AddOperation("link_lead", func(ctx context.Context) error {
			return uc.Leads.LinkContact(ctx, lead.ID, contact.ID, entity.StageContacted, activity)
		})

		if err := txn.Execute(ctx); err != nil {
			return nil, Classify(err)
		}
		out.Contact = contact
	}

	contactID := out.Contact.ID
	lead.ConvertedToContactID = &contactID
	lead.Status = entity.StageContacted
	lead.UpdatedAt = time.Now()
	out.Lead = lead

	if uc.Events != nil {
		event := queue.LeadEvent{
			Type:       queue.EventLeadConverted,
			LeadID:     lead.ID,
			ContactID:  contactID,
			Name:       lead.Name,
			Email:      lead.Email,
			Company:    lead.Company,
			Source:     lead.Source,
			OccurredAt: time.Now(),
		}
		if err := uc.Events.PublishLeadEvent(ctx, event); err != nil {
			log.Printf("⚠️ Lead %s convertido, mas falha ao publicar evento: %v", lead.ID, err)
		}
	}

	return out, nil
}
