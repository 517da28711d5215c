package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/models"
	"savoriq/repositories"
)

// ErrInvalidInput wraps validation failures of caller-supplied data.
var ErrInvalidInput = errors.New("invalid input")

// GuestQuery pages the guest directory.
type GuestQuery struct {
	Tier  string
	Skip  int64
	Limit int64
}

// NewGuest is a manually created guest profile.
type NewGuest struct {
	Name  string
	Email *string
	Phone *string
	Tier  string
}

// GuestService serves the guest directory and per-guest history.
type GuestService struct {
	guests  GuestStore
	orders  OrderStore
	reviews ReviewStore
}

func NewGuestService(guests GuestStore, orders OrderStore, reviews ReviewStore) *GuestService {
	return &GuestService{guests: guests, orders: orders, reviews: reviews}
}

// ListGuests returns guests by most recent visit.
func (s *GuestService) ListGuests(ctx context.Context, q GuestQuery) ([]models.Guest, error) {
	guests, err := s.guests.List(ctx, repositories.GuestFilter{Tier: q.Tier, Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	return guests, nil
}

func (s *GuestService) GetGuest(ctx context.Context, id primitive.ObjectID) (*models.Guest, error) {
	return s.guests.FindByID(ctx, id)
}

func validTier(t string) bool {
	return t == models.TierNew || t == models.TierRegular || t == models.TierVIP
}

// CreateGuest stores a guest profile. Returns ErrInvalidInput for a blank
// name or unknown tier, and repositories.ErrDuplicate for a taken email.
func (s *GuestService) CreateGuest(ctx context.Context, in NewGuest) (*models.Guest, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	tier := strings.ToLower(strings.TrimSpace(in.Tier))
	if tier == "" {
		tier = models.TierNew
	}
	if !validTier(tier) {
		return nil, fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, in.Tier)
	}

	g := &models.Guest{
		Name:  name,
		Email: trimmedOrNil(in.Email),
		Phone: trimmedOrNil(in.Phone),
		Tier:  tier,
	}
	if err := s.guests.Insert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

// GuestOrders returns one page of the guest's orders, newest first.
func (s *GuestService) GuestOrders(ctx context.Context, guestID primitive.ObjectID, skip, limit int64) ([]models.Order, error) {
	orders, err := s.orders.ListByGuest(ctx, guestID, skip, limit)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GuestReviews returns one page of the guest's reviews with their scores.
func (s *GuestService) GuestReviews(ctx context.Context, guestID primitive.ObjectID, platform string, skip, limit int64) ([]models.ReviewWithScores, error) {
	reviews, err := s.reviews.ListWithScores(ctx, repositories.ReviewFilter{
		GuestID:  &guestID,
		Platform: platform,
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.ReviewWithScores{}
	}
	return reviews, nil
}
