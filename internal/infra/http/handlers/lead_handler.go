package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/capacita-crm/internal/entity"
	appmw "github.com/xavierca1/capacita-crm/internal/infra/http/middleware"
	"github.com/xavierca1/capacita-crm/internal/infra/ratelimit"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

type LeadHandler struct {
	Leads      entity.LeadRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	CaptureUC  *usecase.CaptureLeadUseCase
	UpdateUC   *usecase.UpdateLeadUseCase
	NoteUC     *usecase.AddNoteUseCase
	ConvertUC  *usecase.ConvertLeadUseCase
	Limiter    ratelimit.Limiter
}

// CaptureLead handles the public form (POST /api/leads).
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil {
		allowed, err := h.Limiter.Allow(r.Context(), ratelimit.ClientIP(r))
		if err != nil {
			// Fail open while Redis is unreachable.
			log.Printf("⚠️ Rate limiter indisponível: %v", err)
		} else if !allowed {
			appmw.RecordRateLimited()
			writeJSON(w, http.StatusTooManyRequests, ApiResponse{
				Message: "Demasiadas solicitudes, intenta más tarde",
				Code:    "RATE_LIMITED",
			})
			return
		}
	}

	var input usecase.CaptureLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.CaptureUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	appmw.RecordLeadCaptured(lead.Source)
	SendResponse(w, http.StatusCreated, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.LeadFilter{
		Status: q.Get("status"),
		Source: q.Get("source"),
		Query:  q.Get("q"),
		Page:   parsePage(r),
	}

	leads, total, err := h.Leads.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendList(w, leads, total)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	SendResponse(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.Leads.Delete)
}

func (h *LeadHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Leads.FindByID(r.Context(), id); err != nil {
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

func (h *LeadHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
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

// Convert answers 201 when a contact was created, 200 when merged into an existing one.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	out, err := h.ConvertUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	appmw.RecordLeadConverted()
	status := http.StatusCreated
	if out.Merged {
		status = http.StatusOK
	}
	SendResponse(w, status, out)
}
