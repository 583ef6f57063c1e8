package app

import (
	"context"
	"time"

	"stride/internal/domain"
	"stride/internal/observability"

	"go.uber.org/zap"
)

// publish announces a committed change. The write has already succeeded, so a
// publish failure is logged and counted rather than returned.
func publish(ctx context.Context, pub domain.EventPublisher, log *zap.Logger, typ domain.EventType, activityID, accountID int64) {
	if pub == nil {
		return
	}
	e := domain.Event{
		Type:       typ,
		ActivityID: activityID,
		AccountID:  accountID,
		OccurredAt: time.Now().UTC(),
	}
	if err := pub.Publish(ctx, e); err != nil {
		observability.RecordEventFailure()
		log.Warn("publish event",
			zap.String("type", string(typ)),
			zap.Int64("activity_id", activityID),
			zap.Error(err),
		)
	}
}
