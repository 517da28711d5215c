package services

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/models"
	"savoriq/repositories"
)

type memGuests struct {
	items []*models.Guest
}

func (m *memGuests) find(pred func(*models.Guest) bool) (*models.Guest, error) {
	for _, g := range m.items {
		if pred(g) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memGuests) FindByID(_ context.Context, id primitive.ObjectID) (*models.Guest, error) {
	return m.find(func(g *models.Guest) bool { return g.ID == id })
}

func (m *memGuests) FindByEmail(_ context.Context, email string) (*models.Guest, error) {
	return m.find(func(g *models.Guest) bool { return g.Email != nil && *g.Email == email })
}

func (m *memGuests) FindByName(_ context.Context, name string) (*models.Guest, error) {
	return m.find(func(g *models.Guest) bool { return g.Name == name })
}

func (m *memGuests) List(_ context.Context, f repositories.GuestFilter) ([]models.Guest, error) {
	var out []models.Guest
	for _, g := range m.items {
		if f.Tier == "" || g.Tier == f.Tier {
			out = append(out, *g)
		}
	}
	return pageOf(out, f.Skip, f.Limit), nil
}

func (m *memGuests) Insert(_ context.Context, g *models.Guest) error {
	if g.Email != nil {
		if _, err := m.FindByEmail(context.Background(), *g.Email); err == nil {
			return repositories.ErrDuplicate
		}
	}
	g.ID = primitive.NewObjectID()
	cp := *g
	m.items = append(m.items, &cp)
	return nil
}

func (m *memGuests) UpdateProfile(_ context.Context, g *models.Guest) error {
	for i, cur := range m.items {
		if cur.ID == g.ID {
			cp := *g
			m.items[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memGuests) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

type memOrders struct {
	items []models.Order
}

func (m *memOrders) Insert(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	m.items = append(m.items, *o)
	return nil
}

func (m *memOrders) CountByGuest(_ context.Context, id primitive.ObjectID) (int64, error) {
	var n int64
	for _, o := range m.items {
		if o.GuestID == id {
			n++
		}
	}
	return n, nil
}

func (m *memOrders) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

func (m *memOrders) ListByGuest(_ context.Context, id primitive.ObjectID, skip, limit int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.items {
		if o.GuestID == id {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderedAt.After(out[j].OrderedAt) })
	return pageOf(out, skip, limit), nil
}

// pageOf applies skip/limit the way the Mongo queries do; limit 0 means all.
func pageOf[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items
}

func (m *memOrders) ItemAggregates(context.Context) ([]models.ItemAggregate, error) {
	idx := map[[2]string]int{}
	var out []models.ItemAggregate
	for _, o := range m.items {
		k := [2]string{o.ItemName, o.Category}
		if i, ok := idx[k]; ok {
			out[i].OrderCount++
			continue
		}
		idx[k] = len(out)
		out = append(out, models.ItemAggregate{ItemName: o.ItemName, Category: o.Category, OrderCount: 1})
	}
	return out, nil
}

type memReviews struct {
	items  []models.Review
	scores *memScores
}

func (m *memReviews) Insert(_ context.Context, r *models.Review) error {
	r.ID = primitive.NewObjectID()
	m.items = append(m.items, *r)
	return nil
}

func (m *memReviews) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			r := m.items[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memReviews) ExistsByPlatformReviewID(_ context.Context, id string) (bool, error) {
	for _, r := range m.items {
		if r.PlatformReviewID != nil && *r.PlatformReviewID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, r := range m.items {
		if r.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memReviews) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

func (m *memReviews) AverageRating(context.Context) (float64, error) {
	if len(m.items) == 0 {
		return 0, nil
	}
	var sum float64
	for _, r := range m.items {
		sum += r.Rating
	}
	return sum / float64(len(m.items)), nil
}

func (m *memReviews) ListWithScores(_ context.Context, f repositories.ReviewFilter) ([]models.ReviewWithScores, error) {
	var out []models.ReviewWithScores
	for _, r := range m.items {
		if f.GuestID != nil && r.GuestID != *f.GuestID {
			continue
		}
		if f.Platform != "" && r.Platform != f.Platform {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(r.Content), strings.ToLower(f.Search)) {
			continue
		}
		if f.Since != nil && r.ReviewedAt.Before(*f.Since) {
			continue
		}
		rw := models.ReviewWithScores{Review: r, SentimentScores: m.scores.forReview(r.ID)}
		if models.ValidPolarity(f.Sentiment) {
			mean, _ := rw.MeanScore()
			if models.Polarity(mean) != f.Sentiment {
				continue
			}
		}
		out = append(out, rw)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReviewedAt.After(out[j].ReviewedAt) })
	return pageOf(out, f.Skip, f.Limit), nil
}

func (m *memReviews) ListUnscored(_ context.Context, limit int64) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.items {
		if len(m.scores.forReview(r.ID)) > 0 {
			continue
		}
		out = append(out, r)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type memScores struct {
	items []models.SentimentScore
}

func (m *memScores) forReview(id primitive.ObjectID) []models.SentimentScore {
	out := []models.SentimentScore{}
	for _, s := range m.items {
		if s.ReviewID == id {
			out = append(out, s)
		}
	}
	return out
}

func (m *memScores) ReplaceForReview(ctx context.Context, id primitive.ObjectID, scores []models.SentimentScore) error {
	_ = m.DeleteByReview(ctx, id)
	for _, s := range scores {
		s.ID = primitive.NewObjectID()
		s.ReviewID = id
		m.items = append(m.items, s)
	}
	return nil
}

func (m *memScores) DeleteByReview(_ context.Context, id primitive.ObjectID) error {
	kept := m.items[:0]
	for _, s := range m.items {
		if s.ReviewID != id {
			kept = append(kept, s)
		}
	}
	m.items = kept
	return nil
}

func (m *memScores) BucketAverages(context.Context) ([]models.BucketStat, error) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range m.items {
		sums[s.Bucket] += s.Score
		counts[s.Bucket]++
	}
	var out []models.BucketStat
	for b, n := range counts {
		out = append(out, models.BucketStat{Bucket: b, AvgScore: sums[b] / float64(n), Count: n})
	}
	return out, nil
}

type store struct {
	guests  *memGuests
	orders  *memOrders
	reviews *memReviews
	scores  *memScores
}

func newStore() *store {
	scores := &memScores{}
	return &store{
		guests:  &memGuests{},
		orders:  &memOrders{},
		reviews: &memReviews{scores: scores},
		scores:  scores,
	}
}

type recordingDispatcher struct {
	reviews []models.Review
	err     error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, r models.Review) error {
	d.reviews = append(d.reviews, r)
	return d.err
}
