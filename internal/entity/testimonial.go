package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role,omitempty"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Published bool      `json:"published"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTestimonial(author, quote string) *Testimonial {
	return &Testimonial{
		ID:        uuid.New().String(),
		Author:    author,
		Quote:     quote,
		CreatedAt: time.Now(),
	}
}

type TestimonialPatch struct {
	Author    *string `json:"author"`
	Role      *string `json:"role"`
	Company   *string `json:"company"`
	Quote     *string `json:"quote"`
	AvatarURL *string `json:"avatar_url"`
	Published *bool   `json:"published"`
	SortOrder *int    `json:"sort_order"`
}

type TestimonialRepositoryInterface interface {
	Create(ctx context.Context, t *Testimonial) error
	FindByID(ctx context.Context, id string) (*Testimonial, error)
	List(ctx context.Context, publishedOnly bool, page Page) ([]*Testimonial, int, error)
	Update(ctx context.Context, id string, patch TestimonialPatch) (*Testimonial, error)
	Delete(ctx context.Context, id string) error
}
