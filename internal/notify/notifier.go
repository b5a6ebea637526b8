package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/configuration"
)

// LogNotifier writes notifications to a zap logger. Warnings are logged at
// warn level, everything else at info.
type LogNotifier struct {
	logger *zap.Logger
}

var _ configuration.Notifier = LogNotifier{}

// NewLogNotifier returns a LogNotifier.
func NewLogNotifier(logger *zap.Logger) LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LogNotifier{logger: logger.Named("notify")}
}

// Notify implements configuration.Notifier.
func (n LogNotifier) Notify(_ context.Context, item configuration.Notification) {
	fields := []zap.Field{
		zap.String("type", string(item.Kind)),
		zap.String("uid", item.UID),
	}
	if item.Kind == configuration.NotifyWarning {
		n.logger.Warn(item.Message, fields...)
		return
	}
	n.logger.Info(item.Message, fields...)
}

// Multi fans a notification out to several notifiers.
type Multi []configuration.Notifier

// Notify implements configuration.Notifier.
func (m Multi) Notify(ctx context.Context, item configuration.Notification) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, item)
		}
	}
}
