package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pds/internal/config"
)

const (
	testRecoveryKey = "did:key:zQ3shRecoveryKey"
	testHostname    = "pds.example.com"
)

// newTestConfig resolves a configuration for https://pds.example.com with the given
// environment entries layered on top.
func newTestConfig(t *testing.T, env map[string]string) *config.ServerConfig {
	t.Helper()

	environment := map[string]string{
		"RECOVERY_KEY": testRecoveryKey,
		"HOSTNAME":     testHostname,
		"PORT":         "443",
		"JWT_SECRET":   "test-jwt-secret",
	}
	for k, v := range env {
		environment[k] = v
	}

	cfg, err := config.ReadEnv(environment, nil)
	require.NoError(t, err)
	return cfg
}
