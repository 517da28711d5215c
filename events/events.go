package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	ReviewIngested EventType = "review.ingested"
)

const eventVersion = "1"

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "api", "processor"
	Version   string    `json:"version"`
}

func newBase(t EventType, source string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   eventVersion,
	}
}

// ReviewIngestedEvent 새 리뷰가 저장되어 감성 분석이 필요할 때 발행된다.
// 본문을 함께 실어 processor 가 리뷰를 다시 조회하지 않도록 한다.
type ReviewIngestedEvent struct {
	BaseEvent
	ReviewID primitive.ObjectID `json:"review_id"`
	GuestID  primitive.ObjectID `json:"guest_id"`
	Platform string             `json:"platform"`
	Content  string             `json:"content"`
}

func NewReviewIngestedEvent(review models.Review, source string) ReviewIngestedEvent {
	return ReviewIngestedEvent{
		BaseEvent: newBase(ReviewIngested, source),
		ReviewID:  review.ID,
		GuestID:   review.GuestID,
		Platform:  review.Platform,
		Content:   review.Content,
	}
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case ReviewIngestedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case ReviewIngested:
		event = &ReviewIngestedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return event, nil
}
