package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PlatformYelp   = "yelp"
	PlatformGoogle = "google"
)

// Review polarity by the mean of its bucket scores.
const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
	PolarityNeutral  = "neutral"

	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Polarity classifies a mean score. Unscored reviews use 0 and are neutral.
func Polarity(mean float64) string {
	switch {
	case mean >= PositiveThreshold:
		return PolarityPositive
	case mean <= NegativeThreshold:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}

func ValidPolarity(p string) bool {
	return p == PolarityPositive || p == PolarityNegative || p == PolarityNeutral
}

// Review is guest feedback imported from a review platform
// Collection: reviews
type Review struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuestID          primitive.ObjectID `bson:"guest_id" json:"guest_id"`
	Platform         string             `bson:"platform" json:"platform"`
	PlatformReviewID *string            `bson:"platform_review_id,omitempty" json:"platform_review_id"`
	Rating           float64            `bson:"rating" json:"rating"`
	Content          string             `bson:"content" json:"content"`
	ReviewedAt       time.Time          `bson:"reviewed_at" json:"reviewed_at"`
	IngestedAt       time.Time          `bson:"ingested_at" json:"ingested_at"`
}

// ReviewWithScores is a review joined with its sentiment_scores.
type ReviewWithScores struct {
	Review          `bson:",inline"`
	SentimentScores []SentimentScore `bson:"sentiment_scores" json:"sentiment_scores"`
	// GuestName is only set by listings that join guests.
	GuestName string `bson:"guest_name,omitempty" json:"guest_name,omitempty"`
}

// MeanScore averages all bucket scores of the review. ok is false when the
// review has no scores.
func (r ReviewWithScores) MeanScore() (mean float64, ok bool) {
	if len(r.SentimentScores) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range r.SentimentScores {
		sum += s.Score
	}
	return sum / float64(len(r.SentimentScores)), true
}
