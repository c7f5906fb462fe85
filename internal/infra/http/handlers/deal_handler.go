package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

type DealHandler struct {
	Deals      entity.DealRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	CreateUC   *usecase.CreateDealUseCase
	UpdateUC   *usecase.UpdateDealUseCase
	NoteUC     *usecase.AddNoteUseCase
}

func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.DealFilter{
		Stage:     q.Get("stage"),
		ContactID: q.Get("contact_id"),
		Query:     q.Get("q"),
		Page:      parsePage(r),
	}

	deals, total, err := h.Deals.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, deals, total)
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateDealInput
	if !decodeJSON(w, r, &input) {
		return
	}

	deal, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, deal)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.Deals.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, deal)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDealInput
	if !decodeJSON(w, r, &input) {
		return
	}

	deal, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, deal)
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Deals.Delete)
}

func (h *DealHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Deals.FindByID(r.Context(), id); err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}

	activities, err := h.Activities.ListByEntity(r.Context(), id)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, activities)
}

func (h *DealHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	var input usecase.NoteInput
	if !decodeJSON(w, r, &input) {
		return
	}

	activity, err := h.NoteUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, activity)
}
