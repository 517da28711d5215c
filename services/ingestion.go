package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/config"
	"savoriq/models"
	"savoriq/repositories"
)

const (
	vipOrderCount     = 10
	regularOrderCount = 3
)

// IngestionReport summarizes one bulk review import.
type IngestionReport struct {
	Platform          string   `json:"platform"`
	TotalReceived     int      `json:"total_received"`
	Ingested          int      `json:"ingested"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            int      `json:"errors"`
	ErrorDetails      []string `json:"error_details"`
}

// OrderIngestionReport summarizes one bulk order import.
type OrderIngestionReport struct {
	TotalReceived int      `json:"total_received"`
	Ingested      int      `json:"ingested"`
	Errors        int      `json:"errors"`
	ErrorDetails  []string `json:"error_details"`
}

// IngestionService imports platform reviews and orders, linking both to guests.
type IngestionService struct {
	guests     GuestStore
	orders     OrderStore
	reviews    ReviewStore
	scores     ScoreStore
	dispatcher ReviewDispatcher
	now        func() time.Time
}

func NewIngestionService(guests GuestStore, orders OrderStore, reviews ReviewStore, scores ScoreStore, dispatcher ReviewDispatcher) *IngestionService {
	return &IngestionService{
		guests:     guests,
		orders:     orders,
		reviews:    reviews,
		scores:     scores,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// IngestReviews normalizes, deduplicates and stores raw platform records.
// Each stored review is handed to the dispatcher for sentiment analysis.
// Failures are counted per record and never abort the batch.
func (s *IngestionService) IngestReviews(ctx context.Context, platform string, records []json.RawMessage) IngestionReport {
	report := IngestionReport{Platform: platform, ErrorDetails: []string{}}
	if platform != models.PlatformYelp && platform != models.PlatformGoogle {
		report.Errors = 1
		report.ErrorDetails = append(report.ErrorDetails,
			fmt.Sprintf("Invalid platform: %s. Use 'yelp' or 'google'.", platform))
		return report
	}
	report.TotalReceived = len(records)

	for i, raw := range records {
		dup, err := s.ingestReview(ctx, platform, raw)
		switch {
		case err != nil:
			config.Logger.Warnf("error ingesting review #%d: %v", i, err)
			report.Errors++
			report.ErrorDetails = append(report.ErrorDetails, fmt.Sprintf("Review #%d: %v", i, err))
		case dup:
			report.DuplicatesSkipped++
		default:
			report.Ingested++
		}
	}
	return report
}

func (s *IngestionService) ingestReview(ctx context.Context, platform string, raw json.RawMessage) (duplicate bool, err error) {
	n, err := normalizeReview(platform, raw)
	if err != nil {
		return false, err
	}

	exists, err := s.reviews.ExistsByPlatformReviewID(ctx, n.PlatformReviewID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	guest, err := s.getOrCreateGuest(ctx, n.GuestName, n.GuestEmail)
	if err != nil {
		return false, err
	}
	guest.TouchVisit(n.ReviewedAt)
	if err := s.guests.UpdateProfile(ctx, guest); err != nil {
		return false, err
	}

	prID := n.PlatformReviewID
	review := models.Review{
		GuestID:          guest.ID,
		Platform:         n.Platform,
		PlatformReviewID: &prID,
		Rating:           n.Rating,
		Content:          n.Content,
		ReviewedAt:       n.ReviewedAt,
		IngestedAt:       s.now().UTC(),
	}
	if err := s.reviews.Insert(ctx, &review); err != nil {
		return false, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, review); err != nil {
			// the review is stored; scoring can be rerun later
			config.Logger.Warnf("sentiment dispatch failed for review %s: %v", review.ID.Hex(), err)
		}
	}
	return false, nil
}

// getOrCreateGuest matches by email first, then by exact name, else creates a new guest.
func (s *IngestionService) getOrCreateGuest(ctx context.Context, name string, email *string) (*models.Guest, error) {
	if email != nil {
		g, err := s.guests.FindByEmail(ctx, *email)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	g, err := s.guests.FindByName(ctx, name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	g = &models.Guest{Name: name, Email: email, Tier: models.TierNew}
	if err := s.guests.Insert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// IngestOrders stores raw order records and promotes guest tiers.
func (s *IngestionService) IngestOrders(ctx context.Context, records []json.RawMessage) OrderIngestionReport {
	report := OrderIngestionReport{TotalReceived: len(records), ErrorDetails: []string{}}
	for i, raw := range records {
		if err := s.ingestOrder(ctx, raw); err != nil {
			config.Logger.Warnf("error ingesting order #%d: %v", i, err)
			report.Errors++
			report.ErrorDetails = append(report.ErrorDetails, fmt.Sprintf("Order #%d: %v", i, err))
			continue
		}
		report.Ingested++
	}
	return report
}

func (s *IngestionService) ingestOrder(ctx context.Context, raw json.RawMessage) error {
	rec, err := decodeOrder(raw)
	if err != nil {
		return err
	}

	guest, err := s.getOrCreateGuest(ctx, rec.GuestName, rec.GuestEmail)
	if err != nil {
		return err
	}
	guest.TouchVisit(rec.OrderedAt)

	// tier follows the orders already on file, before this one
	prior, err := s.orders.CountByGuest(ctx, guest.ID)
	if err != nil {
		return err
	}
	if t := tierFor(prior); t != "" {
		guest.Tier = t
	}
	if err := s.guests.UpdateProfile(ctx, guest); err != nil {
		return err
	}

	order := models.Order{
		GuestID:   guest.ID,
		ItemName:  rec.ItemName,
		Category:  rec.Category,
		Price:     rec.Price,
		Quantity:  rec.Quantity,
		OrderedAt: rec.OrderedAt,
	}
	return s.orders.Insert(ctx, &order)
}

// tierFor returns the tier earned by orderCount, or "" to leave it unchanged.
func tierFor(orderCount int64) string {
	switch {
	case orderCount >= vipOrderCount:
		return models.TierVIP
	case orderCount >= regularOrderCount:
		return models.TierRegular
	}
	return ""
}

// DeleteReview removes a review together with its sentiment scores.
func (s *IngestionService) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	if err := s.scores.DeleteByReview(ctx, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
