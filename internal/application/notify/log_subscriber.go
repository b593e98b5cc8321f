package notify

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-console/pkg/logger"
)

// LogSubscriber registra cada notificación publicada con un nivel acorde a su severidad.
type LogSubscriber struct {
	log *logger.Logger
}

// NewLogSubscriber construye el suscriptor.
func NewLogSubscriber(log *logger.Logger) *LogSubscriber {
	return &LogSubscriber{log: log}
}

// OnNotification implementa Subscriber.
func (s *LogSubscriber) OnNotification(e Event) {
	if e.Type != Added {
		return
	}
	s.log.WithLevel(levelFor(e.Notification.Severity)).
		Str("notification_id", e.Notification.ID).
		Str("severity", string(e.Notification.Severity)).
		Msg(e.Notification.Message)
}

func levelFor(s Severity) zerolog.Level {
	switch s {
	case Error:
		return zerolog.ErrorLevel
	case Warning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
