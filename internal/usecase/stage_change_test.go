package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
)

func TestUpdateLead_StageChangeRecordsActivity(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo)
	lead := newTestLead()

	repo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	repo.On("Update", ctx, lead.ID, mock.Anything, mock.MatchedBy(func(a *entity.Activity) bool {
		return a != nil && a.FromStage == entity.StageNew && a.ToStage == entity.StageProposal && a.Note == "enviada"
	})).Return(lead, nil)

	_, err := uc.Execute(ctx, lead.ID, UpdateLeadInput{
		LeadPatch: entity.LeadPatch{Status: strPtr("propuesta")},
		Note:      " enviada ",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateLead_SameStageNoActivity(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo)
	lead := newTestLead()

	repo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	repo.On("Update", ctx, lead.ID, mock.Anything, (*entity.Activity)(nil)).Return(lead, nil)

	_, err := uc.Execute(ctx, lead.ID, UpdateLeadInput{LeadPatch: entity.LeadPatch{
		Status: strPtr(entity.StageNew),
		Phone:  strPtr("5512345678"),
	}})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateLead_UnknownStageAccepted(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo)
	lead := newTestLead()

	repo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	repo.On("Update", ctx, lead.ID, mock.Anything, mock.MatchedBy(func(a *entity.Activity) bool {
		return a != nil && a.ToStage == "legacy"
	})).Return(lead, nil)

	_, err := uc.Execute(ctx, lead.ID, UpdateLeadInput{LeadPatch: entity.LeadPatch{Status: strPtr("legacy")}})
	require.NoError(t, err)
}

func TestUpdateLead_InvalidEmail(t *testing.T) {
	uc := NewUpdateLeadUseCase(new(MockLeadRepository))

	_, err := uc.Execute(context.Background(), "id", UpdateLeadInput{LeadPatch: entity.LeadPatch{Email: strPtr("nope")}})
	assert.True(t, assertDomainError(err, KindValidation, CodeValidation))
}

func TestAddNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Note keeps stage", func(t *testing.T) {
		leads := new(MockLeadRepository)
		activities := new(MockActivityRepository)
		uc := NewAddLeadNoteUseCase(leads, activities)
		lead := newTestLead()
		lead.Status = entity.StagePending

		leads.On("FindByID", ctx, lead.ID).Return(lead, nil)
		activities.On("Record", ctx, mock.MatchedBy(func(a *entity.Activity) bool {
			return a.FromStage == entity.StagePending && a.ToStage == entity.StagePending && a.IsNote()
		})).Return(nil)

		a, err := uc.Execute(ctx, lead.ID, NoteInput{Note: "Llamar el lunes"})
		require.NoError(t, err)
		assert.Equal(t, "Llamar el lunes", a.Note)
	})

	t.Run("Empty note", func(t *testing.T) {
		uc := NewAddDealNoteUseCase(new(MockDealRepository), new(MockActivityRepository))
		_, err := uc.Execute(ctx, "d1", NoteInput{Note: "   "})
		assert.True(t, assertDomainError(err, KindValidation, CodeValidation))
	})

	t.Run("Missing deal", func(t *testing.T) {
		deals := new(MockDealRepository)
		uc := NewAddDealNoteUseCase(deals, new(MockActivityRepository))
		deals.On("FindByID", ctx, "d1").Return(nil, entity.ErrDealNotFound)

		_, err := uc.Execute(ctx, "d1", NoteInput{Note: "hola"})
		assert.True(t, assertDomainError(err, KindNotFound, CodeNotFound))
	})
}

func TestCreateDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes creation activity", func(t *testing.T) {
		deals := new(MockDealRepository)
		contacts := new(MockContactRepository)
		uc := NewCreateDealUseCase(deals, contacts)

		contacts.On("FindByID", ctx, "c1").Return(&entity.Contact{ID: "c1"}, nil)
		deals.On("Create", ctx, mock.MatchedBy(func(d *entity.Deal) bool {
			return d.Stage == entity.StageNew && d.Currency == "MXN" && *d.ContactID == "c1" &&
				d.ExpectedCloseDate != nil && d.ExpectedCloseDate.Format("2006-01-02") == "2025-03-31"
		}), mock.MatchedBy(func(a *entity.Activity) bool {
			return a.FromStage == "" && a.ToStage == entity.StageNew && a.Note == "Negociación creada"
		})).Return(nil)

		deal, err := uc.Execute(ctx, CreateDealInput{
			Title:             "Capacitación Excel",
			ContactID:         "c1",
			Amount:            15000,
			ExpectedCloseDate: "2025-03-31",
		})

		require.NoError(t, err)
		assert.Equal(t, 15000.0, deal.Amount)
		deals.AssertExpectations(t)
	})

	t.Run("Unknown contact", func(t *testing.T) {
		deals := new(MockDealRepository)
		contacts := new(MockContactRepository)
		uc := NewCreateDealUseCase(deals, contacts)

		contacts.On("FindByID", ctx, "nope").Return(nil, entity.ErrContactNotFound)

		_, err := uc.Execute(ctx, CreateDealInput{Title: "X", ContactID: "nope"})
		assert.True(t, assertDomainError(err, KindValidation, CodeValidation))
		deals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid input", func(t *testing.T) {
		uc := NewCreateDealUseCase(new(MockDealRepository), new(MockContactRepository))
		_, err := uc.Execute(ctx, CreateDealInput{Title: " ", Amount: -1, ExpectedCloseDate: "31/03/2025"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "expected_close_date")
	})
}

func TestUpdateDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Stage change publishes event", func(t *testing.T) {
		deals := new(MockDealRepository)
		events := new(MockEventPublisher)
		uc := NewUpdateDealUseCase(deals, new(MockContactRepository), events)
		current := entity.NewDeal("Excel", entity.StageProposal)
		updated := *current
		updated.Stage = entity.StageWon

		deals.On("FindByID", ctx, current.ID).Return(current, nil)
		deals.On("Update", ctx, current.ID, mock.MatchedBy(func(p entity.DealPatch) bool {
			return *p.Stage == entity.StageWon && p.Title == nil
		}), mock.MatchedBy(func(a *entity.Activity) bool {
			return a.FromStage == entity.StageProposal && a.ToStage == entity.StageWon
		})).Return(&updated, nil)
		events.On("PublishDealEvent", ctx, mock.MatchedBy(func(e queue.DealEvent) bool {
			return e.Type == queue.EventDealStageChanged && e.FromStage == entity.StageProposal && e.ToStage == entity.StageWon
		})).Return(nil)

		deal, err := uc.Execute(ctx, current.ID, UpdateDealInput{Stage: strPtr(entity.StageWon)})

		require.NoError(t, err)
		assert.Equal(t, entity.StageWon, deal.Stage)
		events.AssertExpectations(t)
	})

	t.Run("Empty contact and date clear columns", func(t *testing.T) {
		deals := new(MockDealRepository)
		events := new(MockEventPublisher)
		uc := NewUpdateDealUseCase(deals, new(MockContactRepository), events)
		current := entity.NewDeal("Excel", "")

		deals.On("FindByID", ctx, current.ID).Return(current, nil)
		deals.On("Update", ctx, current.ID, mock.MatchedBy(func(p entity.DealPatch) bool {
			return p.ClearContact && p.ClearCloseDate && p.ContactID == nil && p.Stage == nil
		}), (*entity.Activity)(nil)).Return(current, nil)

		_, err := uc.Execute(ctx, current.ID, UpdateDealInput{ContactID: strPtr(""), ExpectedCloseDate: strPtr("")})

		require.NoError(t, err)
		events.AssertNotCalled(t, "PublishDealEvent", mock.Anything, mock.Anything)
	})
}

func TestUpdateLead_TrimsNameAndKeepsNoteWithoutStageChange(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo)
	var changed []string
	uc.OnStageChange = func(to string) { changed = append(changed, to) }
	lead := newTestLead()

	repo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	repo.On("Update", ctx, lead.ID, mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Name != nil && *p.Name == "Ana" && p.Status == nil
	}), mock.MatchedBy(func(a *entity.Activity) bool {
		return a != nil && a.IsNote() && a.ToStage == lead.Status && a.Note == "Pidió temario"
	})).Return(lead, nil)

	_, err := uc.Execute(ctx, lead.ID, UpdateLeadInput{
		LeadPatch: entity.LeadPatch{Name: strPtr("  Ana  ")},
		Note:      " Pidió temario ",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	assert.Empty(t, changed)
}

func TestUpdateLead_BlankNameRejected(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo)

	_, err := uc.Execute(context.Background(), "id", UpdateLeadInput{LeadPatch: entity.LeadPatch{Name: strPtr("   ")}})

	assert.True(t, assertDomainError(err, KindValidation, CodeValidation))
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateDeal_NoteOnSameStagePublishesNothing(t *testing.T) {
	ctx := context.Background()
	deals := new(MockDealRepository)
	events := new(MockEventPublisher)
	uc := NewUpdateDealUseCase(deals, new(MockContactRepository), events)
	current := entity.NewDeal("Excel", entity.StageProposal)

	deals.On("FindByID", ctx, current.ID).Return(current, nil)
	deals.On("Update", ctx, current.ID, mock.Anything, mock.MatchedBy(func(a *entity.Activity) bool {
		return a != nil && a.IsNote() && a.ToStage == entity.StageProposal && a.Note == "Sin cambios"
	})).Return(current, nil)

	_, err := uc.Execute(ctx, current.ID, UpdateDealInput{Stage: strPtr(entity.StageProposal), Note: "Sin cambios"})

	require.NoError(t, err)
	deals.AssertExpectations(t)
	events.AssertNotCalled(t, "PublishDealEvent", mock.Anything, mock.Anything)
}
