package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"courtside/models"
	"courtside/utils"
)

// topicsForRole maps a user role to the topics its devices listen on.
// Admin devices additionally receive the reservation traffic topic.
func topicsForRole(role string) []string {
	topics := []string{TopicUser, TopicTournament}
	if role == models.RoleAdmin {
		topics = append(topics, TopicAdmin)
	}
	return topics
}

// FCMTopicManager manages token-to-topic subscriptions through Firebase.
type FCMTopicManager struct{}

// NewFCMTopicManager constructs a TopicManager backed by the global FCM client.
func NewFCMTopicManager() TopicManager {
	return &FCMTopicManager{}
}

func (m *FCMTopicManager) SubscribeUserTokens(ctx context.Context, role string, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	logger := utils.GetLogger()
	for _, topic := range topicsForRole(role) {
		res, err := utils.FCMClient.SubscribeToTopic(ctx, tokens, topic)
		if err != nil {
			logger.Error("fcm: subscribe failed", zap.String("topic", topic), zap.Error(err))
			continue
		}
		if res.FailureCount > 0 {
			logger.Warn("fcm: some tokens failed to subscribe",
				zap.String("topic", topic), zap.Int("failures", res.FailureCount))
		}
	}
}

func (m *FCMTopicManager) UnsubscribeUserTokens(ctx context.Context, role string, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	logger := utils.GetLogger()
	for _, topic := range topicsForRole(role) {
		res, err := utils.FCMClient.UnsubscribeFromTopic(ctx, tokens, topic)
		if err != nil {
			logger.Error("fcm: unsubscribe failed", zap.String("topic", topic), zap.Error(err))
			continue
		}
		if res.FailureCount > 0 {
			logger.Warn("fcm: some tokens failed to unsubscribe",
				zap.String("topic", topic), zap.Int("failures", res.FailureCount))
		}
	}
}

// sendToTopic delivers one event to an FCM topic.
func sendToTopic(ctx context.Context, topic string, event Event) error {
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: event.Title,
			Body:  event.Body,
		},
		Data: map[string]string{
			"type":          event.Kind,
			"reservationid": event.ReservationID,
			"datetime":      event.Datetime,
		},
	}
	_, err := utils.FCMClient.Send(ctx, msg)
	return err
}
