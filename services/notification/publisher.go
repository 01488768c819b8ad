package notification

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"courtside/config"
	"courtside/utils"
)

// TypeReservationPush is the queued task type for reservation pushes.
const TypeReservationPush = "notification:push"

// QueueRedisOpt returns the Redis connection options for the push queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqPublisher enqueues reservation events on the push queue.
type AsynqPublisher struct {
	client *asynq.Client
}

// NewAsynqPublisher constructs a Publisher backed by the push queue.
func NewAsynqPublisher() *AsynqPublisher {
	return &AsynqPublisher{client: asynq.NewClient(QueueRedisOpt())}
}

// PublishReservationEvent enqueues an event for background delivery.
// Failures are logged and swallowed: notification dispatch must never
// fail or delay the mutation that triggered it.
func (p *AsynqPublisher) PublishReservationEvent(ctx context.Context, event Event) {
	logger := utils.GetLogger()

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("notification: failed to marshal event", zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeReservationPush, payload)
	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		logger.Error("notification: failed to enqueue push",
			zap.String("kind", event.Kind), zap.Error(err))
	}
}

// Close releases the underlying queue client.
func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}
