package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"savoriq/cmd/internal/app"
	"savoriq/cmd/processor/handlers"
	"savoriq/config"
	"savoriq/digest"
	"savoriq/eventbus"
	"savoriq/services"
)

const (
	basePartitions = 3
	// 시작 시 재발행할 미분석 리뷰 최대 개수
	recoveryBatch = 500
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		config.Logger.Errorf("bootstrap failed: %v", err)
		os.Exit(1)
	}
	defer a.Close(context.Background())

	brokers, ok := eventbus.Brokers()
	if !ok {
		config.Logger.Error("KAFKA_BOOTSTRAP_SERVERS is not set; processor has nothing to consume")
		os.Exit(1)
	}
	// EventBus 초기화 및 토픽 보장
	if err := eventbus.EnsureTopics(ctx, brokers, eventbus.TopicReviewEvents, basePartitions); err != nil {
		config.Logger.Errorf("failed to ensure eventbus topics: %v", err)
	}
	bus, err := a.EventBus()
	if err != nil {
		config.Logger.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}

	// 점수 없이 남은 리뷰는 시작 시 한 번 다시 발행한다.
	recovery := services.NewRecoveryService(a.Reviews, services.NewEventDispatcher(bus, "processor"))
	if _, err := recovery.Redispatch(ctx, recoveryBatch); err != nil {
		config.Logger.Warnf("recovery of unscored reviews failed: %v", err)
	}

	eventHandler := handlers.NewEventHandlers(a.Sentiment)
	groupID := eventbus.GroupID()

	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				config.Logger.Errorf("%s stopped: %v", name, err)
				cancel()
			}
		}()
	}

	// 메인 구독
	run("subscriber", func() error {
		return bus.Subscribe(ctx, groupID, eventbus.TopicReviewEvents, eventHandler.Route)
	})
	// 재주입기 (지연 토픽 -> 기본 토픽)
	run("retry reinjector", func() error {
		return bus.StartRetryReinjector(ctx, groupID+"-retry", eventbus.TopicReviewEvents)
	})

	job, err := digest.New(a.Config.Digest, a.Config.Briefing.Location(), a.Analytics, nil)
	switch {
	case errors.Is(err, digest.ErrDisabled):
		config.Logger.Info("daily digest disabled (digest.schedule, digest.slack_channel or SLACK_BOT_TOKEN not set)")
	case err != nil:
		config.Logger.Errorf("daily digest disabled: %v", err)
	default:
		config.Logger.Infof("daily digest scheduled (cron: %s) to %s", a.Config.Digest.Schedule, a.Config.Digest.SlackChannel)
		run("digest", func() error {
			job.Start(ctx)
			return nil
		})
	}

	config.Logger.Info("processor started")
	<-ctx.Done()
	config.Logger.Info("shutting down processor...")
	wg.Wait()
	config.Logger.Info("processor stopped")
}
