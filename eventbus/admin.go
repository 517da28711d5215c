package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// topicSpecs는 기본 토픽, DLQ(1 파티션), 재시도 토픽 사양을 만듭니다.
func topicSpecs(topic Topic, basePartitions int) []kafka.TopicSpecification {
	if basePartitions <= 0 {
		basePartitions = 1
	}
	specs := []kafka.TopicSpecification{
		{Topic: topic.Base(), NumPartitions: basePartitions, ReplicationFactor: 1},
		{Topic: topic.DLQ(), NumPartitions: 1, ReplicationFactor: 1},
	}
	for _, retryTopic := range topic.GetRetryTopics() {
		specs = append(specs, kafka.TopicSpecification{
			Topic:             retryTopic,
			NumPartitions:     basePartitions,
			ReplicationFactor: 1,
		})
	}
	return specs
}

// EnsureTopics는 토픽 묶음을 생성합니다. 이미 존재하는 토픽은 성공으로 간주합니다.
func EnsureTopics(ctx context.Context, brokers string, topic Topic, basePartitions int) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return fmt.Errorf("AdminClient 생성 실패: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	results, err := admin.CreateTopics(ctx, topicSpecs(topic, basePartitions))
	if err != nil {
		return fmt.Errorf("토픽 생성 요청 실패: %w", err)
	}
	for _, r := range results {
		code := r.Error.Code()
		if code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("토픽 %s 생성 실패: %v", r.Topic, r.Error)
		}
	}
	return nil
}
