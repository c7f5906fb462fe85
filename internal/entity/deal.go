package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCurrency = "MXN"

type Deal struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	ContactID         *string    `json:"contact_id"`
	Stage             string     `json:"stage"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewDeal(title, stage string) *Deal {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		stage = DefaultStage().Key
	}
	now := time.Now()
	return &Deal{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Stage:     stage,
		Currency:  DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DealPatch: ClearContact / ClearCloseDate null the column explicitly since a nil pointer means "keep".
type DealPatch struct {
	Title             *string
	ContactID         *string
	ClearContact      bool
	Stage             *string
	Amount            *float64
	Currency          *string
	ExpectedCloseDate *time.Time
	ClearCloseDate    bool
	Notes             *string
}

type DealFilter struct {
	Stage     string
	ContactID string
	Query     string
	Page
}

// StageTotal aggregates deals of one stage for the dashboard.
type StageTotal struct {
	Stage  string  `json:"stage"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type DealRepositoryInterface interface {
	// Create stores the deal and its creation activity together.
	Create(ctx context.Context, d *Deal, activity *Activity) error
	FindByID(ctx context.Context, id string) (*Deal, error)
	List(ctx context.Context, filter DealFilter) ([]*Deal, int, error)
	Update(ctx context.Context, id string, patch DealPatch, activity *Activity) (*Deal, error)
	Delete(ctx context.Context, id string) error
	TotalsByStage(ctx context.Context) ([]StageTotal, error)
}
