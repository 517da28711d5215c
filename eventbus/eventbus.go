package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RetryDelays는 재시도 횟수(1-based)별로 사용할 고정된 지연 시간 목록입니다.
// 감성 분석 실패는 대부분 DB 일시 장애이므로 짧은 간격부터 시작합니다.
var RetryDelays = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	1 * time.Minute,
	5 * time.Minute,
}

const retrySegment = ".retry."

// Topic은 기본 토픽, 재시도 토픽, DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 DLQ 토픽 이름을 반환합니다 (예: savoriq.review.events.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// GetRetryTopics는 모든 재시도 토픽 이름을 반환합니다. 형식: <base>.retry.<n>
func (t Topic) GetRetryTopics() []string {
	topics := make([]string, len(RetryDelays))
	for i := range RetryDelays {
		topics[i] = t.base + retrySegment + strconv.Itoa(i+1)
	}
	return topics
}

// GetRetryTopic은 재시도 횟수(1-based)에 해당하는 재시도 토픽 이름을 반환합니다.
func (t Topic) GetRetryTopic(retryCount int) (string, error) {
	if retryCount <= 0 || retryCount > len(RetryDelays) {
		return "", ErrMaxRetryExceeded
	}
	return t.base + retrySegment + strconv.Itoa(retryCount), nil
}

// ParseRetryDelayFromTopicName는 "<base>.retry.<n>" 토픽 이름에서 RetryDelays[n-1] 을 찾습니다.
func ParseRetryDelayFromTopicName(name string) (time.Duration, bool) {
	idx := strings.LastIndex(name, retrySegment)
	if idx == -1 {
		return 0, false
	}
	n, err := strconv.Atoi(name[idx+len(retrySegment):])
	if err != nil || n <= 0 || n > len(RetryDelays) {
		return 0, false
	}
	return RetryDelays[n-1], true
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID string `json:"id"`
	// Key 는 파티션 키다. 같은 키의 이벤트는 같은 파티션에서 순서대로 처리된다.
	Key       string          `json:"key,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Retry     int             `json:"retry"` // 현재 재시도 횟수 (0부터 시작)
	MaxRetry  int             `json:"max_retry"`
	LastError string          `json:"last_error,omitempty"`
}

// EventHandler는 이벤트 처리 함수의 시그니처입니다.
type EventHandler func(ctx context.Context, event Event) error

// EventBus 인터페이스는 이벤트 발행 및 구독의 추상화를 정의합니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe는 기본 토픽을 구독하여 메인 로직을 실행합니다.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	// StartRetryReinjector는 모든 재시도 토픽을 구독하고 기본 토픽으로 이벤트를 재발행합니다.
	StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error
	Close()
}

// ErrMaxRetryExceeded는 최대 재시도 횟수를 초과했을 때 반환되는 오류입니다.
var ErrMaxRetryExceeded = errors.New("최대 재시도 횟수 초과")

// failureRoute는 핸들러 실패 후 이벤트를 보낼 토픽과 갱신된 이벤트를 결정합니다.
// 이벤트의 MaxRetry 와 RetryDelays 중 작은 쪽을 넘으면 DLQ 로 보냅니다.
func failureRoute(topic Topic, evt Event, handlerErr error) (dest string, next Event, dlq bool) {
	next = evt
	next.LastError = handlerErr.Error()

	maxRetry := evt.MaxRetry
	if maxRetry <= 0 || maxRetry > len(RetryDelays) {
		maxRetry = len(RetryDelays)
	}
	if evt.Retry+1 > maxRetry {
		return topic.DLQ(), next, true
	}
	retryTopic, err := topic.GetRetryTopic(evt.Retry + 1)
	if err != nil {
		return topic.DLQ(), next, true
	}
	next.Retry = evt.Retry + 1
	return retryTopic, next, false
}

// PartitionKey 는 Key 가 없으면 ID 를 사용합니다.
func (e Event) PartitionKey() string {
	if e.Key != "" {
		return e.Key
	}
	return e.ID
}

// String은 로그용 요약입니다.
func (e Event) String() string {
	return fmt.Sprintf("event(id=%s retry=%d/%d)", e.ID, e.Retry, e.MaxRetry)
}
