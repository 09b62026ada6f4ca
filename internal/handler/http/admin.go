package http

import (
	"net/http"

	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

func (h *Handler) createInviteCode(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInviteCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.InviteService.CreateInviteCode(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) disableInviteCodes(w http.ResponseWriter, r *http.Request) {
	var req models.DisableInviteCodesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.InviteService.DisableInviteCodes(r.Context(), req.Codes); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
