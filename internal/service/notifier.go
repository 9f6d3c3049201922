package service

import (
	"context"

	"github.com/andrinek/notesync/internal/logger"
)

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that writes notices to the application
// log. Used as the default until the UI installs its own.
func NewLogNotifier(log *logger.Logger) Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &logNotifier{logger: log}
}

func (n *logNotifier) Notify(_ context.Context, message string) {
	n.logger.Info().Str("notice", message).Msg("user notice")
}
