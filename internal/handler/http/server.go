package http

import (
	"net/http"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.ServerInfoService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) describeServer(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.ServerInfoService.DescribeServer(r.Context()), http.StatusOK)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AccountService.CreateAccount(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AccountService.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("did", session.DID).Msg("session created")
	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	did, _ := utils.GetDIDFromContext(r.Context())

	session, err := h.services.AccountService.GetSession(r.Context(), did)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

// requestPasswordReset answers 200 whether or not the email is known.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.RequestPasswordResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.ResetPassword(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
