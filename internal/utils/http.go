package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pds/models"
)

// WriteJSON writes data as a JSON response with the given status code. When
// data cannot be marshaled a plain 500 response is written instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteXRPCError writes the standard XRPC error body
// {"error": name, "message": message}.
func WriteXRPCError(w http.ResponseWriter, statusCode int, name, message string) (int, error) {
	return WriteJSON(w, models.XRPCError{Error: name, Message: message}, statusCode)
}
