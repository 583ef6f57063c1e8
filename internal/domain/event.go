package domain

import (
	"context"
	"time"
)

// EventType names a change published to downstream consumers.
type EventType string

const (
	EventActivityCreated EventType = "activity.created"
	EventActivityUpdated EventType = "activity.updated"
	EventActivityDeleted EventType = "activity.deleted"
	EventActivityLiked   EventType = "activity.liked"
	EventActivityUnliked EventType = "activity.unliked"
)

// Event describes a committed change to an activity or its likes.
type Event struct {
	Type       EventType `json:"type"`
	ActivityID int64     `json:"activity_id"`
	AccountID  int64     `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher is the port for announcing committed changes.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
