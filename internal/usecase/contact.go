package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

type CreateContactUseCase struct {
	Repo entity.ContactRepositoryInterface
}

func NewCreateContactUseCase(repo entity.ContactRepositoryInterface) *CreateContactUseCase {
	return &CreateContactUseCase{Repo: repo}
}

func (uc *CreateContactUseCase) Execute(ctx context.Context, input ContactInput) (*entity.Contact, error) {
	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	contact, err := entity.NewContact(input.Name, input.Email)
	if err != nil {
		return nil, NewValidationError([]ValidationError{{"contact", err.Error()}})
	}
	contact.Lastname = strings.TrimSpace(input.Lastname)
	contact.Company = strings.TrimSpace(input.Company)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Position = strings.TrimSpace(input.Position)
	contact.Notes = strings.TrimSpace(input.Notes)

	if err := uc.Repo.Create(ctx, contact); err != nil {
		return nil, Classify(err)
	}
	return contact, nil
}

type UpdateContactUseCase struct {
	Repo entity.ContactRepositoryInterface
}

func NewUpdateContactUseCase(repo entity.ContactRepositoryInterface) *UpdateContactUseCase {
	return &UpdateContactUseCase{Repo: repo}
}

func (uc *UpdateContactUseCase) Execute(ctx context.Context, id string, patch entity.ContactPatch) (*entity.Contact, error) {
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
	if patch.Phone != nil && *patch.Phone != "" && !isValidPhoneNumber(*patch.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	contact, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, Classify(err)
	}
	return contact, nil
}
