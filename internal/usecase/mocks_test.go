package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, f entity.LeadFilter) ([]*entity.Lead, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch, activity *entity.Activity) (*entity.Lead, error) {
	args := m.Called(ctx, id, patch, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) LinkContact(ctx context.Context, leadID, contactID, status string, activity *entity.Activity) error {
	args := m.Called(ctx, leadID, contactID, status, activity)
	return args.Error(0)
}

func (m *MockLeadRepository) CountByStage(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLeadRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, f entity.ContactFilter) ([]*entity.Contact, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*entity.Contact), args.Int(1), args.Error(2)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, patch entity.ContactPatch) (*entity.Contact, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, d *entity.Deal, activity *entity.Activity) error {
	args := m.Called(ctx, d, activity)
	return args.Error(0)
}

func (m *MockDealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) List(ctx context.Context, f entity.DealFilter) ([]*entity.Deal, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*entity.Deal), args.Int(1), args.Error(2)
}

func (m *MockDealRepository) Update(ctx context.Context, id string, patch entity.DealPatch, activity *entity.Activity) (*entity.Deal, error) {
	args := m.Called(ctx, id, patch, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDealRepository) TotalsByStage(ctx context.Context) ([]entity.StageTotal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.StageTotal), args.Error(1)
}

// MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, a *entity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByEntity(ctx context.Context, entityID string) ([]*entity.Activity, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).([]*entity.Activity), args.Error(1)
}

// MockAdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, u *entity.AdminUser) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AdminUser), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishDealEvent(ctx context.Context, event queue.DealEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPasswordChecker struct {
	mock.Mock
}

func (m *MockPasswordChecker) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID, email, name string) (string, error) {
	args := m.Called(userID, email, name)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func assertDomainError(err error, kind ErrorKind, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == kind && de.Code == code
}
