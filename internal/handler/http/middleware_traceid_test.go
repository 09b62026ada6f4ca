package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pds/internal/logger"
)

// newTestHandler creates a Handler without services and with a nop logger.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantGenerated  bool
	}{
		{name: "trace ID from request header is reused", requestTraceID: "my-custom-trace-id"},
		{name: "UUID as incoming trace ID", requestTraceID: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "no trace ID in request, UUID generated", wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			nextCalled := false

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/xrpc/_health", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rr := httptest.NewRecorder()

			h.withTraceID(next).ServeHTTP(rr, req)

			assert.True(t, nextCalled)
			got := rr.Header().Get(traceIDHeader)
			if tt.wantGenerated {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "generated trace ID must be a UUID")
				return
			}
			assert.Equal(t, tt.requestTraceID, got)
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newTestHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rr.Header().Get(traceIDHeader)] = struct{}{}
	}

	assert.Len(t, seen, 50)
}

// TestWithTraceID_LoggerInContext verifies that downstream log entries carry
// the trace id.
func TestWithTraceID_LoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: newBufferLogger(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
	assert.Contains(t, buf.String(), `"message":"inside handler"`)
}
