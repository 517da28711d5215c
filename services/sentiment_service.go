package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/config"
	"savoriq/models"
	"savoriq/repositories"
	"savoriq/sentiment"
)

// SentimentService classifies review text and stores the bucket scores.
type SentimentService struct {
	classifier sentiment.Classifier
	reviews    ReviewFinder
	scores     ScoreStore
	now        func() time.Time
}

func NewSentimentService(classifier sentiment.Classifier, reviews ReviewFinder, scores ScoreStore) *SentimentService {
	return &SentimentService{classifier: classifier, reviews: reviews, scores: scores, now: time.Now}
}

// ClassifierName reports which classifier was selected at startup.
func (s *SentimentService) ClassifierName() string {
	return s.classifier.Name()
}

// Analyze classifies text without storing anything.
func (s *SentimentService) Analyze(ctx context.Context, text string) []sentiment.BucketResult {
	return s.classifier.Classify(ctx, text)
}

// AnalyzeAndStore classifies the review text and replaces the review's stored scores.
// A review deleted before its analysis ran gets no scores; (nil, nil) is returned.
func (s *SentimentService) AnalyzeAndStore(ctx context.Context, reviewID primitive.ObjectID, text string) ([]models.SentimentScore, error) {
	if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			config.Logger.Infof("review %s no longer exists; skipping analysis", reviewID.Hex())
			return nil, nil
		}
		return nil, fmt.Errorf("load review %s: %w", reviewID.Hex(), err)
	}

	results := s.classifier.Classify(ctx, text)
	analyzedAt := s.now().UTC()

	scores := make([]models.SentimentScore, 0, len(results))
	for _, r := range results {
		score := models.SentimentScore{
			ReviewID:   reviewID,
			Bucket:     string(r.Bucket),
			Score:      r.Score,
			AnalyzedAt: analyzedAt,
		}
		if r.Summary != "" {
			summary := r.Summary
			score.Summary = &summary
		}
		scores = append(scores, score)
	}

	if err := s.scores.ReplaceForReview(ctx, reviewID, scores); err != nil {
		return nil, fmt.Errorf("store sentiment scores for review %s: %w", reviewID.Hex(), err)
	}
	config.Logger.Debugf("review %s analyzed by %s (%d buckets)", reviewID.Hex(), s.classifier.Name(), len(scores))
	return scores, nil
}

// Dispatch scores a freshly ingested review inline. Used when no broker is configured.
func (s *SentimentService) Dispatch(ctx context.Context, review models.Review) error {
	_, err := s.AnalyzeAndStore(ctx, review.ID, review.Content)
	return err
}
