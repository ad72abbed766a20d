package handlers

import (
	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/config"
	domain "github.com/memberhub/media-api/internal/domain/media"
)

// Provider groups the HTTP handlers for route registration.
type Provider struct {
	Media *MediaHandler
}

func NewProvider(cfg *config.Config, service *domain.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Media: NewMediaHandler(cfg, service, log),
	}
}
