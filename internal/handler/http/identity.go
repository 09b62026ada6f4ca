package http

import (
	"net/http"

	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

func (h *Handler) resolveHandle(w http.ResponseWriter, r *http.Request) {
	did, err := h.services.IdentityService.ResolveHandle(r.Context(), r.URL.Query().Get("handle"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ResolveHandleResponse{DID: did}, http.StatusOK)
}

func (h *Handler) getRecommendedDIDCredentials(w http.ResponseWriter, r *http.Request) {
	did, _ := utils.GetDIDFromContext(r.Context())

	creds, err := h.services.IdentityService.RecommendedDIDCredentials(r.Context(), did)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, creds, http.StatusOK)
}
