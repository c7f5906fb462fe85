package usecase

import (
	"context"

	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
	PublishDealEvent(ctx context.Context, event queue.DealEvent) error
}

type PasswordChecker interface {
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID, email, name string) (string, error)
}
