package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/models"
	"savoriq/repositories"
)

// Storage capabilities the services need. The repositories package provides
// the Mongo implementations.

type GuestStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Guest, error)
	FindByEmail(ctx context.Context, email string) (*models.Guest, error)
	FindByName(ctx context.Context, name string) (*models.Guest, error)
	List(ctx context.Context, f repositories.GuestFilter) ([]models.Guest, error)
	Insert(ctx context.Context, g *models.Guest) error
	UpdateProfile(ctx context.Context, g *models.Guest) error
	Count(ctx context.Context) (int64, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	CountByGuest(ctx context.Context, guestID primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	ListByGuest(ctx context.Context, guestID primitive.ObjectID, skip, limit int64) ([]models.Order, error)
	ItemAggregates(ctx context.Context) ([]models.ItemAggregate, error)
}

// ReviewFinder loads one review. Returns repositories.ErrNotFound when it does not exist.
type ReviewFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
}

type ReviewStore interface {
	ReviewFinder
	Insert(ctx context.Context, r *models.Review) error
	ExistsByPlatformReviewID(ctx context.Context, platformReviewID string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	ListWithScores(ctx context.Context, f repositories.ReviewFilter) ([]models.ReviewWithScores, error)
}

type ScoreStore interface {
	ReplaceForReview(ctx context.Context, reviewID primitive.ObjectID, scores []models.SentimentScore) error
	DeleteByReview(ctx context.Context, reviewID primitive.ObjectID) error
	BucketAverages(ctx context.Context) ([]models.BucketStat, error)
}

var (
	_ GuestStore  = (*repositories.GuestRepository)(nil)
	_ OrderStore  = (*repositories.OrderRepository)(nil)
	_ ReviewStore = (*repositories.ReviewRepository)(nil)
	_ ScoreStore  = (*repositories.SentimentScoreRepository)(nil)
)
