package handlers

import (
	"net/http"

	"github.com/xavierca1/capacita-crm/internal/infra/auth"
	appmw "github.com/xavierca1/capacita-crm/internal/infra/http/middleware"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

type AuthHandler struct {
	LoginUC      *usecase.LoginUseCase
	SecureCookie bool
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, out.Token, h.SecureCookie)
	SendResponse(w, http.StatusOK, out.User)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.SecureCookie)
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Me must run behind RequireAdmin.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := appmw.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{Message: "Sesión inválida o expirada", Code: "UNAUTHORIZED"})
		return
	}
	SendResponse(w, http.StatusOK, meResponse{ID: claims.Subject, Email: claims.Email, Name: claims.Name})
}
