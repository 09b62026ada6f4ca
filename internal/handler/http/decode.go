package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxJSONBodySize bounds the body of every JSON procedure.
const maxJSONBodySize = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
