package services

import (
	"context"

	"savoriq/eventbus"
	"savoriq/events"
	"savoriq/models"
)

// ReviewDispatcher hands a stored review over for sentiment analysis.
type ReviewDispatcher interface {
	Dispatch(ctx context.Context, review models.Review) error
}

// EventDispatcher publishes review.ingested events for the processor.
// Events are keyed by review ID so every event of one review lands on the
// same partition and is scored by one consumer at a time.
type EventDispatcher struct {
	bus    eventbus.EventBus
	topic  eventbus.Topic
	source string
}

func NewEventDispatcher(bus eventbus.EventBus, source string) *EventDispatcher {
	return &EventDispatcher{bus: bus, topic: eventbus.TopicReviewEvents, source: source}
}

func (d *EventDispatcher) Dispatch(ctx context.Context, review models.Review) error {
	evt := events.NewReviewIngestedEvent(review, d.source)
	return eventbus.PublishJSON(ctx, d.bus, d.topic, evt.ID, review.ID.Hex(), evt)
}

var (
	_ ReviewDispatcher = (*EventDispatcher)(nil)
	_ ReviewDispatcher = (*SentimentService)(nil)
)
