package services

import (
	"context"

	"savoriq/config"
	"savoriq/models"
	"savoriq/repositories"
)

// UnscoredReviewFinder lists reviews that were stored but never scored.
type UnscoredReviewFinder interface {
	ListUnscored(ctx context.Context, limit int64) ([]models.Review, error)
}

// RecoveryService 는 감성 점수가 없는 리뷰를 다시 분석 대기열로 보낸다.
// 브로커 장애나 DLQ 로 빠진 이벤트 때문에 점수가 비어 있는 리뷰를 채우는 용도다.
type RecoveryService struct {
	reviews    UnscoredReviewFinder
	dispatcher ReviewDispatcher
}

func NewRecoveryService(reviews UnscoredReviewFinder, dispatcher ReviewDispatcher) *RecoveryService {
	return &RecoveryService{reviews: reviews, dispatcher: dispatcher}
}

// Redispatch hands up to limit unscored reviews to the dispatcher and
// returns how many were accepted. A dispatch failure is logged and skipped.
func (s *RecoveryService) Redispatch(ctx context.Context, limit int64) (int, error) {
	pending, err := s.reviews.ListUnscored(ctx, limit)
	if err != nil {
		return 0, err
	}
	dispatched := 0
	for _, rv := range pending {
		if err := s.dispatcher.Dispatch(ctx, rv); err != nil {
			config.WarnWithFields("recovery dispatch failed", config.Fields{
				"review_id": rv.ID.Hex(),
				"error":     err.Error(),
			})
			continue
		}
		dispatched++
	}
	if len(pending) > 0 {
		config.Logger.Infof("recovery: re-dispatched %d/%d unscored reviews", dispatched, len(pending))
	}
	return dispatched, nil
}

var _ UnscoredReviewFinder = (*repositories.ReviewRepository)(nil)
