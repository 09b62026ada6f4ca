package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/models"
)

const (
	adminAccount = "admin"

	// maxInviteCodeAttempts bounds retries on generated code collisions.
	maxInviteCodeAttempts = 3
)

type inviteCodeGenerator interface {
	InviteCode(hostname string) string
}

type inviteService struct {
	invites   store.InviteRepository
	generator inviteCodeGenerator
	hostname  string
	now       func() time.Time

	logger *logger.Logger
}

func NewInviteService(invites store.InviteRepository, generator inviteCodeGenerator, hostname string, logger *logger.Logger) InviteService {
	return &inviteService{
		invites:   invites,
		generator: generator,
		hostname:  hostname,
		now:       time.Now,
		logger:    logger,
	}
}

// CreateInviteCode stores a new code usable req.UseCount times. Codes
// created without a target account belong to the admin.
func (s *inviteService) CreateInviteCode(ctx context.Context, req models.CreateInviteCodeRequest) (models.CreateInviteCodeResponse, error) {
	log := logger.FromContext(ctx)

	if req.UseCount < 1 {
		return models.CreateInviteCodeResponse{}, fmt.Errorf("%w: useCount must be positive", ErrInvalidDataProvided)
	}
	forAccount := req.ForAccount
	if forAccount == "" {
		forAccount = adminAccount
	}

	for attempt := 1; ; attempt++ {
		code := models.InviteCode{
			Code:          s.generator.InviteCode(s.hostname),
			AvailableUses: req.UseCount,
			ForAccount:    forAccount,
			CreatedBy:     adminAccount,
			CreatedAt:     s.now().UTC(),
		}

		err := s.invites.CreateInviteCode(ctx, code)
		if err == nil {
			log.Info().Str("for_account", forAccount).Int("use_count", req.UseCount).Msg("invite code created")
			return models.CreateInviteCodeResponse{Code: code.Code}, nil
		}
		if !errors.Is(err, store.ErrInviteCodeAlreadyExists) || attempt == maxInviteCodeAttempts {
			log.Err(err).Str("func", "*inviteService.CreateInviteCode").Msg("error creating invite code")
			return models.CreateInviteCodeResponse{}, fmt.Errorf("error creating invite code: %w", err)
		}
	}
}

func (s *inviteService) DisableInviteCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return fmt.Errorf("%w: no codes given", ErrInvalidDataProvided)
	}

	if err := s.invites.DisableInviteCodes(ctx, codes); err != nil {
		return fmt.Errorf("error disabling invite codes: %w", err)
	}

	logger.FromContext(ctx).Info().Strs("codes", codes).Msg("invite codes disabled")
	return nil
}
