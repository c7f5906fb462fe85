package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xavierca1/capacita-crm/internal/entity"
	appmw "github.com/xavierca1/capacita-crm/internal/infra/http/middleware"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

const genericErrorMessage = "Ocurrió un error, intenta de nuevo"

// ApiResponse is the envelope for every JSON body.
type ApiResponse struct {
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func SendResponse(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, ApiResponse{Data: data})
}

func SendList(w http.ResponseWriter, data any, total int) {
	writeJSON(w, http.StatusOK, ApiResponse{Data: data, Total: &total})
}

func writeJSON(w http.ResponseWriter, statusCode int, body ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Falha ao serializar resposta: %v", err)
	}
}

// writeError maps usecase errors to status codes. Unknown errors are logged,
// reported to Sentry and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusForKind(de.Kind), ApiResponse{Message: de.Message, Code: de.Code})
		return
	}

	code := "INTERNAL_ERROR"
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		code = te.Code
	}
	log.Printf("❌ [%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	appmw.CaptureError(r, err, map[string]interface{}{"path": r.URL.Path, "method": r.Method})
	writeJSON(w, http.StatusInternalServerError, ApiResponse{Message: genericErrorMessage, Code: code})
}

func statusForKind(k usecase.ErrorKind) int {
	switch k {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindConflict:
		return http.StatusConflict
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ApiResponse{Message: message, Code: usecase.CodeValidation})
}

// decodeJSON writes the 400 itself; callers just return on false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "JSON inválido: "+err.Error())
		return false
	}
	return true
}

func parsePage(r *http.Request) entity.Page {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return entity.Page{Offset: offset, Limit: limit}.Normalize()
}

func deleteWith(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id string) error) {
	if err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, usecase.Classify(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
