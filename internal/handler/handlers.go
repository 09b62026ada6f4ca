package handler

import (
	"github.com/MKhiriev/go-pds/internal/handler/http"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServicesProvided
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
