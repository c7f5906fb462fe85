package handlers

import (
	"net/http"

	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.DashboardUC.Execute(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendResponse(w, http.StatusOK, out)
}

// Stages exposes the pipeline registry so the admin UI renders the same columns.
func (h *DashboardHandler) Stages(w http.ResponseWriter, r *http.Request) {
	SendResponse(w, http.StatusOK, entity.Stages())
}
