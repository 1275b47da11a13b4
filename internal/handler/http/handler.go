package http

import (
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Recorder

	logger *logger.Logger
}

func NewHandler(services *service.Services, recorder *metrics.Recorder, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  recorder,
		logger:   logger,
	}
}
