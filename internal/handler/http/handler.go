package http

import (
	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/service"
)

type Handler struct {
	services   *service.Services
	authConfig config.ServerAuth

	logger *logger.Logger
}

func NewHandler(services *service.Services, auth config.ServerAuth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		authConfig: auth,
		logger:     logger,
	}
}
