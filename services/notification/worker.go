package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"courtside/utils"
)

// InitPushWorker runs the push delivery worker in the background. It
// consumes queued reservation events and delivers them to the admin
// topic; reservation traffic notifies administrators, as member devices
// only subscribe to the user and tournament topics.
func InitPushWorker() {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationPush, handlePushTask)

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("push worker: attempt %d/%d failed to start: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("push worker: max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handlePushTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var event Event
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		logger.Error("push worker: invalid payload", zap.Error(err))
		return err
	}

	if err := sendToTopic(ctx, TopicAdmin, event); err != nil {
		logger.Error("push worker: failed to send notification",
			zap.String("kind", event.Kind),
			zap.String("reservation", event.ReservationID),
			zap.Error(err))
		return err
	}

	logger.Debug("push worker: delivered notification",
		zap.String("kind", event.Kind),
		zap.String("reservation", event.ReservationID))
	return nil
}
