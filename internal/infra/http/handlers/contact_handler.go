package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

type ContactHandler struct {
	Contacts entity.ContactRepositoryInterface
	CreateUC *usecase.CreateContactUseCase
	UpdateUC *usecase.UpdateContactUseCase
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entity.ContactFilter{Query: r.URL.Query().Get("q"), Page: parsePage(r)}

	contacts, total, err := h.Contacts.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, contacts, total)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contact, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusCreated, contact)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Contacts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch entity.ContactPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	contact, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Contacts.Delete)
}
