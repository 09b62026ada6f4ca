package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pds/internal/adapter"
	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

const (
	pdsServiceID   = "atproto_pds"
	pdsServiceType = "AtprotoPersonalDataServer"

	// plcIdentifierLength is the length of the method-specific part of a
	// did:plc identifier.
	plcIdentifierLength = 24
)

// identityService implements [IdentityService].
//
// In debug mode handles are looked up in an in-process name registry before
// the accounts table. The registry starts as a copy of the configured one
// and is never shared with the configuration.
type identityService struct {
	accounts store.AccountRepository
	plc      adapter.PLCClient
	urls     *URLBuilder

	recoveryKey string

	mu       sync.RWMutex
	registry map[string]string

	logger *logger.Logger
}

func NewIdentityService(accounts store.AccountRepository, plc adapter.PLCClient, urls *URLBuilder, cfg *config.ServerConfig, logger *logger.Logger) IdentityService {
	return &identityService{
		accounts:    accounts,
		plc:         plc,
		urls:        urls,
		recoveryKey: cfg.RecoveryKey(),
		registry:    cfg.TestNameRegistry(),
		logger:      logger,
	}
}

func (s *identityService) ResolveHandle(ctx context.Context, handle string) (string, error) {
	handle = normalizeHandle(handle)
	if handle == "" {
		return "", fmt.Errorf("%w: handle is required", ErrInvalidHandle)
	}

	if did, ok := s.lookupTestHandle(handle); ok {
		return did, nil
	}

	account, err := s.accounts.FindAccountByHandle(ctx, handle)
	if errors.Is(err, store.ErrAccountNotFound) {
		return "", fmt.Errorf("%w: %q", ErrHandleNotFound, handle)
	}
	if err != nil {
		return "", fmt.Errorf("error resolving handle: %w", err)
	}

	return account.DID, nil
}

func (s *identityService) lookupTestHandle(handle string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	did, ok := s.registry[handle]
	return did, ok
}

func (s *identityService) RegisterTestHandle(handle, did string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry == nil {
		return ErrTestRegistryDisabled
	}
	s.registry[normalizeHandle(handle)] = did

	return nil
}

func (s *identityService) AssignDID(ctx context.Context, suppliedDID, handle string) (string, error) {
	if suppliedDID == "" {
		return s.newPLCIdentifier(handle)
	}

	log := logger.FromContext(ctx)

	doc, err := s.plc.ResolveDID(ctx, suppliedDID)
	switch {
	case errors.Is(err, adapter.ErrInvalidDID):
		return "", fmt.Errorf("%w: %w", ErrInvalidDID, err)
	case errors.Is(err, adapter.ErrDIDNotFound):
		return "", fmt.Errorf("%w: %q is not registered", ErrInvalidDID, suppliedDID)
	case err != nil:
		log.Err(err).Str("func", "*identityService.AssignDID").Str("did", suppliedDID).Msg("plc directory lookup failed")
		return "", fmt.Errorf("%w: %w", ErrDIDResolutionFailed, err)
	}

	if endpoint := doc.PDSEndpoint(); endpoint != s.urls.PublicURL() {
		log.Warn().Str("did", suppliedDID).Str("endpoint", endpoint).Msg("did document points to another server")
		return "", fmt.Errorf("%w: service endpoint is %q", ErrIncompatibleDIDDoc, endpoint)
	}

	return suppliedDID, nil
}

// newPLCIdentifier derives a did:plc from an unsigned genesis document
// naming the recovery key, the handle and this server.
func (s *identityService) newPLCIdentifier(handle string) (string, error) {
	genesis := struct {
		RotationKeys []string                     `json:"rotationKeys"`
		AlsoKnownAs  []string                     `json:"alsoKnownAs"`
		Services     map[string]models.DIDService `json:"services"`
		Nonce        string                       `json:"nonce"`
	}{
		RotationKeys: []string{s.recoveryKey},
		AlsoKnownAs:  []string{"at://" + handle},
		Services:     s.services(),
		Nonce:        uuid.NewString(),
	}

	data, err := json.Marshal(genesis)
	if err != nil {
		return "", fmt.Errorf("error encoding genesis document: %w", err)
	}

	// drop the multibase prefix of the content ref
	return "did:plc:" + utils.ContentRef(data)[1:1+plcIdentifierLength], nil
}

func (s *identityService) RecommendedDIDCredentials(ctx context.Context, did string) (models.RecommendedDIDCredentials, error) {
	account, err := s.accounts.FindAccountByDID(ctx, did)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.RecommendedDIDCredentials{}, ErrAccountNotFound
	}
	if err != nil {
		return models.RecommendedDIDCredentials{}, fmt.Errorf("error loading account: %w", err)
	}

	return models.RecommendedDIDCredentials{
		RotationKeys: []string{s.recoveryKey},
		AlsoKnownAs:  []string{"at://" + account.Handle},
		Services:     s.services(),
	}, nil
}

func (s *identityService) services() map[string]models.DIDService {
	return map[string]models.DIDService{
		pdsServiceID: {Type: pdsServiceType, ServiceEndpoint: s.urls.PublicURL()},
	}
}
