// Package app wires configuration, storage, the text generator and the
// services shared by the api and processor commands.
package app

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"savoriq/config"
	"savoriq/db"
	"savoriq/eventbus"
	"savoriq/insights"
	"savoriq/llm"
	"savoriq/metrics"
	"savoriq/quota"
	"savoriq/repositories"
	"savoriq/sentiment"
	"savoriq/services"
)

type App struct {
	Config config.AppConfig

	Guests  *repositories.GuestRepository
	Orders  *repositories.OrderRepository
	Reviews *repositories.ReviewRepository
	Scores  *repositories.SentimentScoreRepository
	AILogs  *repositories.AILogRepository

	// Generator is nil when no model credential is configured.
	Generator llm.TextGenerator
	Sentiment *services.SentimentService
	Analytics *services.AnalyticsService

	bus eventbus.EventBus
}

// Bootstrap 는 설정/로거/메트릭/Mongo 를 초기화하고 서비스들을 조립한다.
func Bootstrap(ctx context.Context) (*App, error) {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)
	metrics.Register(prometheus.DefaultRegisterer)

	if err := db.Init(ctx); err != nil {
		return nil, err
	}
	d := db.Database()

	a := &App{
		Config:  cfg,
		Guests:  repositories.NewGuestRepository(d),
		Orders:  repositories.NewOrderRepository(d),
		Reviews: repositories.NewReviewRepository(d),
		Scores:  repositories.NewSentimentScoreRepository(d),
		AILogs:  repositories.NewAILogRepository(d),
	}
	a.Generator = NewGenerator(ctx, cfg.LLM, a.AILogs)

	classifier := sentiment.New(cfg.LLM, a.Generator)
	config.Logger.Infof("sentiment classifier: %s", classifier.Name())
	a.Sentiment = services.NewSentimentService(classifier, a.Reviews, a.Scores)

	briefer := insights.NewBriefer(
		insights.NewBriefingGenerator(a.Generator, cfg.Briefing.Snippets()),
		cfg.Briefing.Location(),
	)
	a.Analytics = services.NewAnalyticsService(a.Guests, a.Orders, a.Reviews, a.Scores, briefer)
	return a, nil
}

// NewGenerator 는 provider 클라이언트를 llm.Guard 로 감싼다 (타임아웃이 한도 대기까지 포함).
// 자격 증명이 없거나 클라이언트 생성에 실패하면 nil 을 반환한다.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, rec llm.CallRecorder) llm.TextGenerator {
	gen, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			config.Logger.Infof("no %s credential configured; using heuristic classifier and fallback briefings", cfg.ProviderName())
		} else {
			config.Logger.Warnf("llm client init failed (provider=%s): %v", cfg.ProviderName(), err)
		}
		return nil
	}
	return llm.Guard(gen, cfg.Timeout(), quota.NewLimiterFromConfig(cfg), rec, cfg.Model())
}

// EventBus 는 브로커가 설정된 경우에만 Kafka 버스를 만든다. 없으면 (nil, nil).
func (a *App) EventBus() (eventbus.EventBus, error) {
	if a.bus != nil {
		return a.bus, nil
	}
	brokers, ok := eventbus.Brokers()
	if !ok {
		return nil, nil
	}
	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		return nil, err
	}
	a.bus = bus
	return bus, nil
}

// Dispatcher 는 브로커가 있으면 이벤트 발행, 없으면 인라인 분석을 사용한다.
func (a *App) Dispatcher(source string) (services.ReviewDispatcher, error) {
	bus, err := a.EventBus()
	if err != nil {
		return nil, err
	}
	if bus == nil {
		config.Logger.Info("no kafka broker configured; reviews are analyzed inline")
		return a.Sentiment, nil
	}
	return services.NewEventDispatcher(bus, source), nil
}

func (a *App) Close(ctx context.Context) {
	if a.bus != nil {
		a.bus.Close()
	}
	if err := db.Disconnect(ctx); err != nil {
		config.Logger.Warnf("mongo disconnect: %v", err)
	}
}
