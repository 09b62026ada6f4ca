package service

import (
	"context"

	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/models"
)

type serverInfoService struct {
	buildInfo      models.AppBuildInfo
	urls           *URLBuilder
	inviteRequired bool

	logger *logger.Logger
}

func NewServerInfoService(buildInfo models.AppBuildInfo, urls *URLBuilder, cfg *config.ServerConfig, logger *logger.Logger) ServerInfoService {
	return &serverInfoService{
		buildInfo:      buildInfo,
		urls:           urls,
		inviteRequired: cfg.InviteRequired(),
		logger:         logger,
	}
}

func (s *serverInfoService) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{Version: s.buildInfo.BuildVersion()}
}

func (s *serverInfoService) DescribeServer(ctx context.Context) models.DescribeServerResponse {
	return models.DescribeServerResponse{
		InviteCodeRequired:   s.inviteRequired,
		AvailableUserDomains: s.urls.AvailableUserDomains(),
		DID:                  s.urls.ServiceDID(),
	}
}
