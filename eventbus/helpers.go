package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NewJSONEvent는 payload를 JSON으로 인코딩하여 Event를 구성합니다.
// id가 비어 있으면 UUID 를 생성합니다.
func NewJSONEvent(id string, payload any, maxRetry int) (Event, error) {
	if maxRetry <= 0 || maxRetry > len(RetryDelays) {
		maxRetry = len(RetryDelays)
	}
	if id == "" {
		id = uuid.NewString()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("payload marshal 실패: %w", err)
	}
	return Event{
		ID:       id,
		Payload:  b,
		MaxRetry: maxRetry,
	}, nil
}

// DecodeJSON은 Event.Payload를 제네릭 타입으로 언마샬합니다.
func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("payload unmarshal 실패: %w", err)
	}
	return out, nil
}

// PublishJSON은 payload 를 새 Event 로 감싸 topic 의 기본 토픽에 발행합니다.
// key 는 파티션 키이며, 재시도 토픽을 거쳐도 유지됩니다.
func PublishJSON(ctx context.Context, bus EventBus, topic Topic, id, key string, payload any) error {
	evt, err := NewJSONEvent(id, payload, 0)
	if err != nil {
		return err
	}
	evt.Key = key
	return bus.Publish(ctx, topic.Base(), evt)
}
