package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/insights"
	"savoriq/models"
	"savoriq/repositories"
	"savoriq/sentiment"
)

const (
	recentReviewLimit = 10
	favoriteItemLimit = 3
)

type OverviewStats struct {
	TotalGuests       int64                      `json:"total_guests"`
	TotalOrders       int64                      `json:"total_orders"`
	TotalReviews      int64                      `json:"total_reviews"`
	AvgRating         float64                    `json:"avg_rating"`
	SentimentByBucket []insights.BucketSentiment `json:"sentiment_by_bucket"`
}

type ReviewStatsQuery struct {
	Platform string
	Search   string
	// Days limits to reviews from the last N days; 0 means all.
	Days int
}

// ReviewListQuery filters and pages the review feed.
type ReviewListQuery struct {
	Platform string
	Search   string
	// Sentiment is a models.Polarity value; anything else is ignored.
	Sentiment string
	Days      int
	Skip      int64
	Limit     int64
}

type ReviewStats struct {
	Total     int     `json:"total"`
	AvgRating float64 `json:"avg_rating"`
	Positive  int     `json:"positive"`
	Negative  int     `json:"negative"`
	Neutral   int     `json:"neutral"`
}

type DeepAnalytics struct {
	Overview      OverviewStats              `json:"overview"`
	TopPerformers []insights.ItemPerformance `json:"top_performers"`
	Risks         []insights.ItemPerformance `json:"risks"`
	Briefing      insights.Briefing          `json:"briefing"`
}

type GuestPulse struct {
	Guest            models.Guest               `json:"guest"`
	TotalOrders      int                        `json:"total_orders"`
	TotalSpend       float64                    `json:"total_spend"`
	FavoriteItems    []string                   `json:"favorite_items"`
	VisitCount       int                        `json:"visit_count"`
	SentimentSummary []insights.BucketSentiment `json:"sentiment_summary"`
	RecentReviews    []models.ReviewWithScores  `json:"recent_reviews"`
}

// AnalyticsService reads stored orders, reviews and scores back into
// dashboard aggregates, item rankings and the manager briefing.
type AnalyticsService struct {
	guests  GuestStore
	orders  OrderStore
	reviews ReviewStore
	scores  ScoreStore
	briefer *insights.Briefer
	now     func() time.Time
}

func NewAnalyticsService(guests GuestStore, orders OrderStore, reviews ReviewStore, scores ScoreStore, briefer *insights.Briefer) *AnalyticsService {
	return &AnalyticsService{
		guests:  guests,
		orders:  orders,
		reviews: reviews,
		scores:  scores,
		briefer: briefer,
		now:     time.Now,
	}
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// bucketSentiments converts stored stats into fixed bucket order, dropping unknown buckets.
func bucketSentiments(stats []models.BucketStat) []insights.BucketSentiment {
	byBucket := make(map[sentiment.Bucket]models.BucketStat, len(stats))
	for _, st := range stats {
		if b, ok := sentiment.ParseBucket(st.Bucket); ok {
			byBucket[b] = st
		}
	}
	out := make([]insights.BucketSentiment, 0, len(byBucket))
	for _, b := range sentiment.Buckets {
		if st, ok := byBucket[b]; ok {
			out = append(out, insights.BucketSentiment{
				Bucket:      b,
				AvgScore:    sentiment.Round2(st.AvgScore),
				ReviewCount: st.Count,
			})
		}
	}
	return out
}

func (s *AnalyticsService) Overview(ctx context.Context) (*OverviewStats, error) {
	guests, err := s.guests.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.reviews.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.scores.BucketAverages(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewStats{
		TotalGuests:       guests,
		TotalOrders:       orders,
		TotalReviews:      reviews,
		AvgRating:         sentiment.Round2(avgRating),
		SentimentByBucket: bucketSentiments(stats),
	}, nil
}

func (s *AnalyticsService) since(days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

// ListReviews returns the newest reviews matching q, each with its scores and
// the reviewing guest's name.
func (s *AnalyticsService) ListReviews(ctx context.Context, q ReviewListQuery) ([]models.ReviewWithScores, error) {
	reviews, err := s.reviews.ListWithScores(ctx, repositories.ReviewFilter{
		Platform:      q.Platform,
		Search:        q.Search,
		Since:         s.since(q.Days),
		Sentiment:     q.Sentiment,
		WithGuestName: true,
		Skip:          q.Skip,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.ReviewWithScores{}
	}
	return reviews, nil
}

// ReviewStats buckets matching reviews by the mean of their scores.
// Reviews without scores count as neutral.
func (s *AnalyticsService) ReviewStats(ctx context.Context, q ReviewStatsQuery) (*ReviewStats, error) {
	f := repositories.ReviewFilter{Platform: q.Platform, Search: q.Search, Since: s.since(q.Days)}
	reviews, err := s.reviews.ListWithScores(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &ReviewStats{Total: len(reviews)}
	var ratingSum float64
	for _, r := range reviews {
		ratingSum += r.Rating
		mean, _ := r.MeanScore()
		switch models.Polarity(mean) {
		case models.PolarityPositive:
			out.Positive++
		case models.PolarityNegative:
			out.Negative++
		default:
			out.Neutral++
		}
	}
	if out.Total > 0 {
		out.AvgRating = round1(ratingSum / float64(out.Total))
	}
	return out, nil
}

// ItemRanking correlates every stored review with the order catalog.
func (s *AnalyticsService) ItemRanking(ctx context.Context) (*insights.ItemRanking, error) {
	reviews, err := s.reviews.ListWithScores(ctx, repositories.ReviewFilter{})
	if err != nil {
		return nil, err
	}
	catalog, err := s.orders.ItemAggregates(ctx)
	if err != nil {
		return nil, err
	}
	ranking := insights.Correlate(toScoredReviews(reviews), toCatalog(catalog))
	return &ranking, nil
}

func toScoredReviews(reviews []models.ReviewWithScores) []insights.ScoredReview {
	out := make([]insights.ScoredReview, 0, len(reviews))
	for _, r := range reviews {
		sr := insights.ScoredReview{ID: r.ID.Hex(), Text: r.Content, Scores: make([]insights.Score, 0, len(r.SentimentScores))}
		for _, sc := range r.SentimentScores {
			sr.Scores = append(sr.Scores, insights.Score{Bucket: sentiment.Bucket(sc.Bucket), Score: sc.Score})
		}
		out = append(out, sr)
	}
	return out
}

func toCatalog(items []models.ItemAggregate) []insights.CatalogItem {
	out := make([]insights.CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, insights.CatalogItem{
			ItemName:   it.ItemName,
			Category:   insights.Category(it.Category),
			OrderCount: it.OrderCount,
		})
	}
	return out
}

// Briefing returns the manager briefing for the current data, cached per day.
func (s *AnalyticsService) Briefing(ctx context.Context) (insights.Briefing, error) {
	deep, err := s.Deep(ctx)
	if err != nil {
		return insights.Briefing{}, err
	}
	return deep.Briefing, nil
}

func (s *AnalyticsService) Deep(ctx context.Context) (*DeepAnalytics, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	ranking, err := s.ItemRanking(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.reviews.ListWithScores(ctx, repositories.ReviewFilter{Limit: recentReviewLimit})
	if err != nil {
		return nil, err
	}
	snippets := make([]string, 0, len(recent))
	for _, r := range recent {
		snippets = append(snippets, r.Content)
	}

	briefing := s.briefer.Brief(ctx, insights.BriefingInput{
		BucketSentiment:        overview.SentimentByBucket,
		TopPerformers:          ranking.TopPerformers,
		Risks:                  ranking.Risks,
		RecentFeedbackSnippets: snippets,
	})
	return &DeepAnalytics{
		Overview:      *overview,
		TopPerformers: ranking.TopPerformers,
		Risks:         ranking.Risks,
		Briefing:      briefing,
	}, nil
}

// GuestPulse combines a guest's purchase history with the sentiment of
// their ten most recent reviews. Returns repositories.ErrNotFound for an
// unknown guest.
func (s *AnalyticsService) GuestPulse(ctx context.Context, guestID primitive.ObjectID) (*GuestPulse, error) {
	guest, err := s.guests.FindByID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByGuest(ctx, guestID, 0, 0)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListWithScores(ctx, repositories.ReviewFilter{GuestID: &guestID, Limit: recentReviewLimit})
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.ReviewWithScores{}
	}

	var spend float64
	visitDays := map[string]struct{}{}
	categories := map[string]struct{}{}
	for _, o := range orders {
		spend += o.Price * float64(o.Quantity)
		visitDays[o.OrderedAt.UTC().Format("2006-01-02")] = struct{}{}
		categories[o.Category] = struct{}{}
	}
	visits := len(visitDays)
	if visits == 0 {
		visits = 1
	}

	return &GuestPulse{
		Guest:            *guest,
		TotalOrders:      len(orders),
		TotalSpend:       sentiment.Round2(spend),
		FavoriteItems:    favoriteItems(orders, favoriteItemLimit),
		VisitCount:       visits,
		SentimentSummary: guestSentiment(reviews, categories),
		RecentReviews:    reviews,
	}, nil
}

// favoriteItems ranks item names by total quantity. Ties keep the order in
// which items first appear in orders.
func favoriteItems(orders []models.Order, limit int) []string {
	counts := map[string]int{}
	var names []string
	for _, o := range orders {
		if _, seen := counts[o.ItemName]; !seen {
			names = append(names, o.ItemName)
		}
		counts[o.ItemName] += o.Quantity
	}
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// guestSentiment averages the guest's scores per bucket. A bucket with no
// scores still appears, at zero, when the guest ordered from that category.
func guestSentiment(reviews []models.ReviewWithScores, orderedCategories map[string]struct{}) []insights.BucketSentiment {
	scores := map[sentiment.Bucket][]float64{}
	for _, r := range reviews {
		for _, sc := range r.SentimentScores {
			if b, ok := sentiment.ParseBucket(strings.ToLower(sc.Bucket)); ok {
				scores[b] = append(scores[b], sc.Score)
			}
		}
	}

	out := []insights.BucketSentiment{}
	for _, b := range sentiment.Buckets {
		vals := scores[b]
		if len(vals) > 0 {
			var sum float64
			for _, v := range vals {
				sum += v
			}
			out = append(out, insights.BucketSentiment{
				Bucket:      b,
				AvgScore:    sentiment.Round2(sum / float64(len(vals))),
				ReviewCount: len(vals),
			})
			continue
		}
		if _, ordered := orderedCategories[string(b)]; ordered {
			out = append(out, insights.BucketSentiment{Bucket: b})
		}
	}
	return out
}
