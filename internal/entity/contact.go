package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname,omitempty"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	LeadID    *string   `json:"lead_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContact(name, email string) (*Contact, error) {
	now := time.Now()
	c := &Contact{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ContactFromLead copies the lead's person data; the lead message becomes the contact notes.
func ContactFromLead(l *Lead) *Contact {
	now := time.Now()
	leadID := l.ID
	return &Contact{
		ID:        uuid.New().String(),
		Name:      l.Name,
		Lastname:  l.Lastname,
		Email:     NormalizeEmail(l.Email),
		Company:   l.Company,
		Phone:     l.Phone,
		Notes:     l.Message,
		LeadID:    &leadID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

type ContactPatch struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
	Position *string `json:"position"`
	Notes    *string `json:"notes"`
}

type ContactFilter struct {
	Query string
	Page
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	// FindByEmail compares lower(email); returns ErrContactNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*Contact, int, error)
	Update(ctx context.Context, id string, patch ContactPatch) (*Contact, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
