package consumer

import (
	"context"
	"encoding/json"

	"github.com/faresbyte/tawseel-task-system/internal/events"
	"github.com/faresbyte/tawseel-task-system/internal/report"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAssignmentLifecycle invalidates the cached report overview
// whenever an assignment is created or changes status, so audits and
// dashboards never serve stale aggregates for long.
func ConsumeAssignmentLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.assignment_lifecycle")
	log.Info("assignment lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("assignment lifecycle consumer stopped")
				return
			}
			log.Error("fetch assignment lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.AssignmentLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode assignment lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, report.CacheKey).Err(); err != nil {
			// Leave the message uncommitted so invalidation is retried.
			log.Error("invalidate report cache failed",
				zap.String("assignment_id", event.AssignmentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit assignment lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("report cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("assignment_id", event.AssignmentID),
			zap.String("new_status", event.NewStatus),
		)
	}
}
