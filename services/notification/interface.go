// Package notification delivers FCM pushes for reservation traffic.
// Publishing is always fire-and-forget: events are handed to a Redis
// backed queue and delivered by a background worker, so the request
// cycle never waits on FCM and delivery failures never fail a booking.
package notification

import "context"

// Reservation event kinds.
const (
	EventNew    = "new"
	EventUpdate = "update"
	EventDelete = "delete"
)

// FCM topics.
const (
	TopicAdmin      = "admin"
	TopicUser       = "user"
	TopicTournament = "tournament"
)

// Event describes a reservation mutation to announce.
type Event struct {
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	ReservationID string `json:"reservationId,omitempty"`
	Datetime      string `json:"datetime"`
}

// Publisher hands reservation events to the outbound queue. It never
// returns an error: enqueue failures are logged and swallowed.
type Publisher interface {
	PublishReservationEvent(ctx context.Context, event Event)
}

// TopicManager subscribes and unsubscribes device push tokens to the
// role-appropriate FCM topics.
type TopicManager interface {
	SubscribeUserTokens(ctx context.Context, role string, tokens []string)
	UnsubscribeUserTokens(ctx context.Context, role string, tokens []string)
}
