package service

import (
	"github.com/MKhiriev/go-pds/internal/adapter"
	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

type Services struct {
	ServerInfoService ServerInfoService
	AuthService       AuthService
	AccountService    AccountService
	IdentityService   IdentityService
	InviteService     InviteService
	BlobService       BlobService
	MailService       MailService
	URLBuilder        *URLBuilder
}

func NewServices(
	storages *store.Storages,
	plc adapter.PLCClient,
	mailSender MailSender,
	cfg *config.ServerConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	authService, err := NewAuthService(cfg, logger)
	if err != nil {
		return nil, err
	}

	urls := NewURLBuilder(cfg)
	identityService := NewIdentityService(storages.AccountRepository, plc, urls, cfg, logger)
	mailService := NewMailService(mailSender, cfg, logger)

	return &Services{
		ServerInfoService: NewServerInfoService(buildInfo, urls, cfg, logger),
		AuthService:       authService,
		AccountService:    NewAccountService(storages.AccountRepository, authService, identityService, mailService, urls, cfg, logger),
		IdentityService:   identityService,
		InviteService:     NewInviteService(storages.InviteRepository, utils.NewUUIDGenerator(), cfg.Hostname(), logger),
		BlobService:       NewBlobService(storages.BlockStore, logger),
		MailService:       mailService,
		URLBuilder:        urls,
	}, nil
}
