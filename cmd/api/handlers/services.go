package handlers

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/insights"
	"savoriq/models"
	"savoriq/sentiment"
	"savoriq/services"
)

// Ingester 는 services.IngestionService 가 구현한다.
type Ingester interface {
	IngestReviews(ctx context.Context, platform string, records []json.RawMessage) services.IngestionReport
	IngestOrders(ctx context.Context, records []json.RawMessage) services.OrderIngestionReport
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}

// Analyzer 는 services.SentimentService 가 구현한다.
type Analyzer interface {
	ClassifierName() string
	Analyze(ctx context.Context, text string) []sentiment.BucketResult
}

// Analytics 는 services.AnalyticsService 가 구현한다.
type Analytics interface {
	Overview(ctx context.Context) (*services.OverviewStats, error)
	ListReviews(ctx context.Context, q services.ReviewListQuery) ([]models.ReviewWithScores, error)
	ReviewStats(ctx context.Context, q services.ReviewStatsQuery) (*services.ReviewStats, error)
	ItemRanking(ctx context.Context) (*insights.ItemRanking, error)
	Deep(ctx context.Context) (*services.DeepAnalytics, error)
	GuestPulse(ctx context.Context, guestID primitive.ObjectID) (*services.GuestPulse, error)
}

// Guests 는 services.GuestService 가 구현한다.
type Guests interface {
	ListGuests(ctx context.Context, q services.GuestQuery) ([]models.Guest, error)
	GetGuest(ctx context.Context, id primitive.ObjectID) (*models.Guest, error)
	CreateGuest(ctx context.Context, in services.NewGuest) (*models.Guest, error)
	GuestOrders(ctx context.Context, guestID primitive.ObjectID, skip, limit int64) ([]models.Order, error)
	GuestReviews(ctx context.Context, guestID primitive.ObjectID, platform string, skip, limit int64) ([]models.ReviewWithScores, error)
}

var (
	_ Guests    = (*services.GuestService)(nil)
	_ Ingester  = (*services.IngestionService)(nil)
	_ Analyzer  = (*services.SentimentService)(nil)
	_ Analytics = (*services.AnalyticsService)(nil)
)
