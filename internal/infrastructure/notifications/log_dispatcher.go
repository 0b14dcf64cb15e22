package notifications

import (
	"context"

	"estate-hub.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogDispatcher records notifications in the structured log instead of
// delivering them. Used when email dispatch is disabled (local development).
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Notify(ctx context.Context, recipientID uuid.UUID, eventType string, payload map[string]interface{}) error {
	logger.Info(ctx, "notification",
		zap.String("recipient_id", recipientID.String()),
		zap.String("event_type", eventType),
		zap.Any("payload", payload),
	)
	return nil
}
