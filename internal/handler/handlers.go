package handler

import (
	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/handler/http"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/service"
)

// Handlers groups the transport handlers enabled by configuration. Only the
// local HTTP API exists today.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, recorder *metrics.Recorder, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, recorder, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
