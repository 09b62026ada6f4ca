package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/handler"
	myHTTP "github.com/MKhiriev/go-pds/internal/handler/http"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/service"
)

func newTestConfig(t *testing.T, port int) *config.ServerConfig {
	t.Helper()

	cfg, err := config.ReadEnv(map[string]string{
		"RECOVERY_KEY": "did:key:zQ3shRecoveryKey",
		"PORT":         strconv.Itoa(port),
	}, nil)
	require.NoError(t, err)
	return cfg
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

func TestNewServer_NoHandlers(t *testing.T) {
	cfg := newTestConfig(t, 2583)

	s, err := NewServer(nil, cfg, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)

	s, err = NewServer(&handler.Handlers{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewHTTPServer_Addr(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), newTestConfig(t, 8080), logger.Nop())

	assert.Equal(t, ":8080", h.server.Addr)
	assert.Equal(t, readHeaderTimeout, h.server.ReadHeaderTimeout)
}

func TestServer_RunAndShutdown(t *testing.T) {
	port := freePort(t)
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, logger.Nop())}

	s, err := NewServer(handlers, newTestConfig(t, port), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.(*server).run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/xrpc/com.atproto.unknown"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotImplemented
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	s := &server{
		httpServer: newHTTPServer(http.NotFoundHandler(), newTestConfig(t, l.Addr().(*net.TCPAddr).Port), logger.Nop()),
		logger:     logger.Nop(),
	}

	err = s.run(context.Background())

	assert.Error(t, err)
}
