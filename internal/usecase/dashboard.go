package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

type DashboardUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Deals    entity.DealRepositoryInterface
	Contacts entity.ContactRepositoryInterface
	Now      func() time.Time
}

func NewDashboardUseCase(leads entity.LeadRepositoryInterface, deals entity.DealRepositoryInterface, contacts entity.ContactRepositoryInterface) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads, Deals: deals, Contacts: contacts, Now: time.Now}
}

// Execute summarises the pipeline in registry order. Rows with an unknown
// stage key are counted under the default stage, the way the UI shows them.
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	leadCounts, err := uc.Leads.CountByStage(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	dealTotals, err := uc.Deals.TotalsByStage(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	contacts, err := uc.Contacts.Count(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	recent, err := uc.Leads.CountSince(ctx, uc.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, Classify(err)
	}

	stages := entity.Stages()
	out := &DashboardOutput{
		Leads:           make([]StageCount, len(stages)),
		Deals:           make([]DealStageSummary, len(stages)),
		TotalContacts:   contacts,
		LeadsLast30Days: recent,
	}
	for i, s := range stages {
		out.Leads[i].Stage = s
		out.Deals[i].Stage = s
	}

	for key, n := range leadCounts {
		out.Leads[entity.LookupStage(key).Order].Count += n
	}
	for _, t := range dealTotals {
		i := entity.LookupStage(t.Stage).Order
		out.Deals[i].Count += t.Count
		out.Deals[i].Amount += t.Amount
	}

	return out, nil
}
