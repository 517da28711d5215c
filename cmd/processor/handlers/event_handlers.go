package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/config"
	"savoriq/eventbus"
	"savoriq/events"
	"savoriq/models"
)

// ReviewAnalyzer 는 services.SentimentService 가 구현한다.
type ReviewAnalyzer interface {
	AnalyzeAndStore(ctx context.Context, reviewID primitive.ObjectID, text string) ([]models.SentimentScore, error)
}

// EventHandlers 이벤트 핸들러 모음
type EventHandlers struct {
	analyzer ReviewAnalyzer
}

func NewEventHandlers(analyzer ReviewAnalyzer) *EventHandlers {
	return &EventHandlers{analyzer: analyzer}
}

// Route 는 BaseEvent.Type 을 먼저 확인해 알맞은 핸들러로 보낸다.
// 알 수 없는 타입은 다른 서비스용 이벤트로 보고 무시한다(커밋).
func (h *EventHandlers) Route(ctx context.Context, ev eventbus.Event) error {
	peek, err := eventbus.DecodeJSON[events.BaseEvent](ev)
	if err != nil {
		return err
	}
	switch peek.Type {
	case events.ReviewIngested:
		v, err := eventbus.DecodeJSON[events.ReviewIngestedEvent](ev)
		if err != nil {
			return err
		}
		return h.HandleReviewIngested(ctx, &v)
	default:
		config.Logger.Debugf("ignoring event type %q (%s)", peek.Type, ev)
		return nil
	}
}

// HandleReviewIngested 리뷰 감성 분석 후 점수를 저장한다.
// 같은 리뷰를 다시 처리해도 점수는 교체되므로 재전달에 안전하다.
func (h *EventHandlers) HandleReviewIngested(ctx context.Context, event *events.ReviewIngestedEvent) error {
	scores, err := h.analyzer.AnalyzeAndStore(ctx, event.ReviewID, event.Content)
	if err != nil {
		config.Logger.Errorf("failed to store sentiment for review %s: %v", event.ReviewID.Hex(), err)
		return err
	}
	config.Logger.Infof("review %s analyzed (%d buckets)", event.ReviewID.Hex(), len(scores))
	return nil
}
