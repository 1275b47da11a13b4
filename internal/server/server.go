package server

import (
	"context"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/handler"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}
	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}

	servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	return servers, nil
}

func (s *server) Run(ctx context.Context) error {
	if err := s.httpServer.Run(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
