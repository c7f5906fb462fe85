package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/capacita-crm/internal/entity"
)

func TestDashboard_FoldsUnknownStagesIntoDefault(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	deals := new(MockDealRepository)
	contacts := new(MockContactRepository)

	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	uc := NewDashboardUseCase(leads, deals, contacts)
	uc.Now = func() time.Time { return now }

	leads.On("CountByStage", ctx).Return(map[string]int{"new": 3, "legacy": 2, "ganada": 1}, nil)
	deals.On("TotalsByStage", ctx).Return([]entity.StageTotal{
		{Stage: "propuesta", Count: 2, Amount: 5000},
		{Stage: "archived", Count: 1, Amount: 100},
	}, nil)
	contacts.On("Count", ctx).Return(7, nil)
	leads.On("CountSince", ctx, now.AddDate(0, 0, -30)).Return(4, nil)

	out, err := uc.Execute(ctx)
	require.NoError(t, err)

	require.Len(t, out.Leads, 7)
	assert.Equal(t, entity.StageNew, out.Leads[0].Stage.Key)
	assert.Equal(t, 5, out.Leads[0].Count)
	assert.Equal(t, 1, out.Leads[5].Count)

	assert.Equal(t, 1, out.Deals[0].Count)
	assert.Equal(t, 100.0, out.Deals[0].Amount)
	assert.Equal(t, 5000.0, out.Deals[3].Amount)

	assert.Equal(t, 7, out.TotalContacts)
	assert.Equal(t, 4, out.LeadsLast30Days)
}

func TestDashboard_RepositoryError(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	leads.On("CountByStage", ctx).Return(map[string]int(nil), assert.AnError)

	_, err := NewDashboardUseCase(leads, new(MockDealRepository), new(MockContactRepository)).Execute(ctx)
	assert.True(t, IsTechnicalError(err))
	leads.AssertNotCalled(t, "CountSince", mock.Anything, mock.Anything)
}
