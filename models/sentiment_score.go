package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SentimentScore is the stored score of one bucket of one review.
// Owned by the review and deleted with it.
// Collection: sentiment_scores
type SentimentScore struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReviewID   primitive.ObjectID `bson:"review_id" json:"review_id"`
	Bucket     string             `bson:"bucket" json:"bucket"`
	Score      float64            `bson:"score" json:"score"`
	Summary    *string            `bson:"summary,omitempty" json:"summary"`
	AnalyzedAt time.Time          `bson:"analyzed_at" json:"analyzed_at"`
}

// BucketStat is the average score and count of one bucket.
type BucketStat struct {
	Bucket   string  `bson:"_id" json:"bucket"`
	AvgScore float64 `bson:"avg_score" json:"avg_score"`
	Count    int     `bson:"count" json:"count"`
}
