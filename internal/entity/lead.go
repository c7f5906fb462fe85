package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultLeadSource = "web"

type Lead struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Lastname             string    `json:"lastname,omitempty"`
	Email                string    `json:"email"`
	Company              string    `json:"company,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	Interest             string    `json:"interest,omitempty"`
	Message              string    `json:"message,omitempty"`
	Source               string    `json:"source"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes,omitempty"`
	ConvertedToContactID *string   `json:"converted_to_contact_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewLead builds a lead captured from the public form.
func NewLead(name, email, source string) *Lead {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultLeadSource
	}
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Source:    source,
		Status:    DefaultStage().Key,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (l *Lead) IsConverted() bool {
	return l.ConvertedToContactID != nil && *l.ConvertedToContactID != ""
}

// LeadPatch carries a partial update; nil fields keep their stored value.
type LeadPatch struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
	Interest *string `json:"interest"`
	Message  *string `json:"message"`
	Source   *string `json:"source"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

type LeadFilter struct {
	Status string
	Source string
	Query  string
	Page
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, int, error)
	// Update applies the patch and, when activity is not nil, records it in the same transaction.
	Update(ctx context.Context, id string, patch LeadPatch, activity *Activity) (*Lead, error)
	Delete(ctx context.Context, id string) error
	// LinkContact fails with ErrLeadAlreadyConverted when the lead already points to a contact.
	LinkContact(ctx context.Context, leadID, contactID, status string, activity *Activity) error
	CountByStage(ctx context.Context) (map[string]int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
