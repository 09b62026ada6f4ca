package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/metrics"
	"github.com/MKhiriev/go-pds/models"
)

// Outbound mail is limited server-wide so that the reset endpoint cannot be
// used to flood the relay.
const (
	mailRateInterval = 2 * time.Second
	mailRateBurst    = 10
)

const passwordResetSubject = "Password reset requested"

type mailService struct {
	sender  MailSender
	from    string
	limiter *rate.Limiter

	logger *logger.Logger
}

func NewMailService(sender MailSender, cfg *config.ServerConfig, logger *logger.Logger) MailService {
	return &mailService{
		sender:  sender,
		from:    cfg.EmailNoReplyAddress(),
		limiter: rate.NewLimiter(rate.Every(mailRateInterval), mailRateBurst),
		logger:  logger,
	}
}

func (s *mailService) SendPasswordReset(ctx context.Context, to, handle, link string) error {
	if !s.limiter.Allow() {
		metrics.MailsSentTotal.WithLabelValues(metrics.MailRateLimited).Inc()
		logger.FromContext(ctx).Warn().Str("func", "*mailService.SendPasswordReset").Msg("mail rate limit reached")
		return ErrMailRateLimited
	}

	body := strings.Join([]string{
		"Hello " + handle + ",",
		"",
		"We received a request to reset the password of your account.",
		"Open the link below to choose a new password:",
		"",
		link,
		"",
		"The link expires in " + passwordResetTokenDuration.String() + ".",
		"If you did not request a reset you can ignore this mail.",
	}, "\n")

	err := s.sender.Send(ctx, models.Mail{
		From:    s.from,
		To:      to,
		Subject: passwordResetSubject,
		Body:    body,
	})
	if err != nil {
		metrics.MailsSentTotal.WithLabelValues(metrics.MailFailed).Inc()
		logger.FromContext(ctx).Err(err).Str("func", "*mailService.SendPasswordReset").Msg("error sending password reset mail")
		return fmt.Errorf("error sending password reset mail: %w", err)
	}
	metrics.MailsSentTotal.WithLabelValues(metrics.MailSent).Inc()

	return nil
}
