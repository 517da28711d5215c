package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"savoriq/config"
)

const pollTimeout = 100 * time.Millisecond

// KafkaEventBus는 confluent-kafka-go 를 사용한 EventBus 구현체입니다.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

// NewKafkaEventBus는 Kafka Producer를 초기화합니다.
func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka Producer 생성 실패: %w", err)
	}

	// 전달 보고서 중 Publish 가 기다리지 않는 것(오류)만 로그로 남긴다.
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					config.Logger.Errorf("메시지 전달 실패 %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				config.Logger.Errorf("Kafka 오류: %v", ev)
			}
		}
	}()

	return &KafkaEventBus{Producer: p, Brokers: brokers}, nil
}

// Close는 남은 메시지를 최대 5초간 플러시한 뒤 Producer를 종료합니다.
func (k *KafkaEventBus) Close() {
	if k.Producer == nil {
		return
	}
	if remaining := k.Producer.Flush(5000); remaining > 0 {
		config.Logger.Warnf("플러시 후에도 %d개의 메시지가 남아 있습니다.", remaining)
	}
	k.Producer.Close()
	config.Logger.Info("Kafka Producer 종료.")
}

// Publish는 지정된 토픽에 이벤트를 발행하고 전달 보고를 기다립니다.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("이벤트 마샬링 실패: %w", err)
	}

	// ctx 취소 후에도 producer 가 보고를 쓸 수 있으므로 채널은 닫지 않는다.
	deliveryChan := make(chan kafka.Event, 1)
	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.PartitionKey()),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("메시지 발행 실패: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		if m, ok := ev.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			return fmt.Errorf("메시지 전달 실패: %w", m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *KafkaEventBus) newConsumer(groupID string, topics []string) (*kafka.Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false, // 재시도/DLQ 발행 성공 후에만 커밋
		"partition.assignment.strategy": "range",
	})
	if err != nil {
		return nil, fmt.Errorf("kafka Consumer 생성 실패: %w", err)
	}
	if err := c.SubscribeTopics(topics, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("토픽 구독 실패 %v: %w", topics, err)
	}
	return c, nil
}

// readMessage 는 타임아웃을 (nil, nil) 로 돌려준다. 치명적 오류만 error 를 반환한다.
func readMessage(c *kafka.Consumer) (*kafka.Message, error) {
	msg, err := c.ReadMessage(pollTimeout)
	if err == nil {
		return msg, nil
	}
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		if kerr.Code() == kafka.ErrTimedOut {
			return nil, nil
		}
		if kerr.IsFatal() {
			return nil, err
		}
	}
	config.Logger.Errorf("ReadMessage 오류: %v", err)
	return nil, nil
}

func commit(c *kafka.Consumer, msg *kafka.Message) {
	if _, err := c.CommitMessage(msg); err != nil {
		config.Logger.Errorf("오프셋 커밋 오류: %v", err)
	}
}

// Subscribe는 기본 토픽을 구독하고 handler 를 실행합니다.
// 실패한 이벤트는 다음 재시도 토픽으로, 재시도 한도를 넘으면 DLQ 로 보냅니다.
func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	c, err := k.newConsumer(groupID, []string{topic.Base()})
	if err != nil {
		return err
	}
	defer c.Close()

	config.Logger.Infof("메인 컨슈머 (%s) 시작됨. 구독 토픽: %s", groupID, topic.Base())

	for {
		select {
		case <-ctx.Done():
			config.Logger.Info("메인 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := readMessage(c)
		if err != nil {
			return fmt.Errorf("메인 컨슈머 치명적 오류: %w", err)
		}
		if msg == nil {
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			config.Logger.Errorf("토픽 %s의 이벤트 페이로드 오류: %v. 메시지를 건너뛰고 커밋합니다.", *msg.TopicPartition.Topic, err)
			commit(c, msg)
			continue
		}

		if evt.Retry > 0 {
			config.Logger.Infof("%s 처리 시작 (재시도)", evt)
		} else {
			config.Logger.Debugf("%s 처리 시작", evt)
		}

		if handlerErr := handler(ctx, evt); handlerErr != nil {
			dest, next, dlq := failureRoute(topic, evt, handlerErr)
			if dlq {
				config.Logger.Errorf("%s 최대 재시도 초과. DLQ %s로 전송. 최종 오류: %v", evt, dest, handlerErr)
			} else {
				config.Logger.Warnf("%s 처리 실패: %v. 토픽 %s에 재시도 예약.", evt, handlerErr, dest)
			}
			if err := k.Publish(ctx, dest, next); err != nil {
				// 커밋하지 않으면 재시작 시 다시 전달된다.
				config.Logger.Errorf("토픽 %s 발행 실패: %v. 오프셋 커밋 안함.", dest, err)
				continue
			}
		}
		commit(c, msg)
	}
}

// StartRetryReinjector는 재시도 토픽을 구독하고, 지연 시간이 지난 메시지를 기본 토픽으로 재발행합니다.
func (k *KafkaEventBus) StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error {
	retryTopics := topic.GetRetryTopics()
	c, err := k.newConsumer(groupID, retryTopics)
	if err != nil {
		return err
	}
	defer c.Close()

	config.Logger.Infof("재시도 재주입 컨슈머 (%s) 시작됨. 구독 토픽: %s", groupID, strings.Join(retryTopics, ", "))

	for {
		select {
		case <-ctx.Done():
			config.Logger.Info("재시도 재주입 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := readMessage(c)
		if err != nil {
			return fmt.Errorf("재시도 재주입 컨슈머 치명적 오류: %w", err)
		}
		if msg == nil {
			continue
		}

		topicName := *msg.TopicPartition.Topic
		delay, ok := ParseRetryDelayFromTopicName(topicName)
		if !ok {
			config.Logger.Errorf("재시도 토픽 이름 파싱 실패: %s. 메시지를 건너뛰고 커밋합니다.", topicName)
			commit(c, msg)
			continue
		}

		if wait := readyIn(msg.Timestamp, delay, time.Now()); wait > 0 {
			// 파티션 위치를 되돌려 같은 메시지를 다시 읽는다.
			time.Sleep(wait)
			if err := c.Seek(msg.TopicPartition, 0); err != nil {
				config.Logger.Errorf("재시도 메시지 seek 실패: %v", err)
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			config.Logger.Errorf("재시도 토픽 %s의 이벤트 페이로드 오류: %v. 메시지를 건너뛰고 커밋합니다.", topicName, err)
			commit(c, msg)
			continue
		}

		config.Logger.Infof("%s를 %s에서 %s로 재주입.", evt, topicName, topic.Base())
		if err := k.Publish(ctx, topic.Base(), evt); err != nil {
			config.Logger.Errorf("이벤트 %s 재주입 실패: %v. 오프셋 커밋 안함.", evt.ID, err)
			continue
		}
		commit(c, msg)
	}
}

// readyIn 은 재주입까지 남은 대기 시간을 50ms~500ms 범위로 잘라 반환한다. 준비되었으면 0.
func readyIn(producedAt time.Time, delay time.Duration, now time.Time) time.Duration {
	remaining := producedAt.Add(delay).Sub(now)
	switch {
	case remaining <= 0:
		return 0
	case remaining > 500*time.Millisecond:
		return 500 * time.Millisecond
	case remaining < 50*time.Millisecond:
		return 50 * time.Millisecond
	}
	return remaining
}
