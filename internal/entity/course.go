package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary,omitempty"`
	Description   string    `json:"description,omitempty"`
	CategorySlug  string    `json:"category_slug,omitempty"`
	ModalitySlug  string    `json:"modality_slug,omitempty"`
	DurationHours int       `json:"duration_hours"`
	Price         float64   `json:"price"`
	Topics        []string  `json:"topics"`
	ImageURL      string    `json:"image_url,omitempty"`
	Active        bool      `json:"active"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewCourse(slug, title string) *Course {
	now := time.Now()
	return &Course{
		ID:        uuid.New().String(),
		Slug:      slug,
		Title:     title,
		Topics:    []string{},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type CoursePatch struct {
	Slug          *string   `json:"slug"`
	Title         *string   `json:"title"`
	Summary       *string   `json:"summary"`
	Description   *string   `json:"description"`
	CategorySlug  *string   `json:"category_slug"`
	ModalitySlug  *string   `json:"modality_slug"`
	DurationHours *int      `json:"duration_hours"`
	Price         *float64  `json:"price"`
	Topics        *[]string `json:"topics"`
	ImageURL      *string   `json:"image_url"`
	Active        *bool     `json:"active"`
	SortOrder     *int      `json:"sort_order"`
}

type CourseFilter struct {
	Category   string
	Modality   string
	ActiveOnly bool
	Query      string
	Page
}

type CourseRepositoryInterface interface {
	Create(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id string) (*Course, error)
	FindActiveBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, filter CourseFilter) ([]*Course, int, error)
	Update(ctx context.Context, id string, patch CoursePatch) (*Course, error)
	Delete(ctx context.Context, id string) error
}
