package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pds/internal/service"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

// uploadBlob stores the raw request body. The Content-Type header becomes
// the mime type of the blob.
func (h *Handler) uploadBlob(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, service.MaxBlobSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: limit is %d bytes", service.ErrBlobTooLarge, tooLarge.Limit))
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	blob, err := h.services.BlobService.UploadBlob(r.Context(), r.Header.Get("Content-Type"), data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UploadBlobResponse{Blob: blob}, http.StatusOK)
}

// getBlob serves a blob by its ref, passed as the "cid" query parameter.
func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.BlobService.GetBlob(r.Context(), r.URL.Query().Get("cid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
