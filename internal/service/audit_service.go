package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gigit/web/internal/events"
	"github.com/gigit/web/internal/observability"
)

// AuditService records session events in the log and in metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	events.SubscribeAll(a.dispatcher, a.handleSessionEvent, events.SessionEvents...)
	a.dispatcher.Subscribe(events.EventProfileUpdated, a.handleProfileUpdated)
	a.dispatcher.Subscribe(events.EventProfileDeleted, a.handleProfileDeleted)
}

func (a *AuditService) handleSessionEvent(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("user_id", event.UserID))
	return nil
}

func (a *AuditService) handleProfileUpdated(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("user_id", event.UserID),
	}
	if payload, ok := event.Payload.(events.ProfileUpdatedPayload); ok {
		fields = append(fields, zap.Strings("fields", payload.Fields))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleProfileDeleted(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	a.logger.Warn(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("user_id", event.UserID))
	return nil
}
