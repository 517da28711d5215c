package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"savoriq/models"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection("reviews")}
}

// Insert stores a new review and sets its ID.
func (r *ReviewRepository) Insert(ctx context.Context, rv *models.Review) error {
	if rv.IngestedAt.IsZero() {
		rv.IngestedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, rv)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = id
	}
	return nil
}

// ExistsByPlatformReviewID reports whether the platform review was already imported.
func (r *ReviewRepository) ExistsByPlatformReviewID(ctx context.Context, platformReviewID string) (bool, error) {
	if platformReviewID == "" {
		return false, nil
	}
	err := r.col.FindOne(ctx, bson.M{"platform_review_id": platformReviewID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var rv models.Review
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rv); err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

// Delete removes the review document only; scores are removed by the caller.
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// AverageRating returns the mean rating over all reviews, 0 when there are none.
func (r *ReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}

// ReviewFilter narrows ListWithScores. Zero values mean no filter.
type ReviewFilter struct {
	GuestID  *primitive.ObjectID
	Platform string
	// Search is a case-insensitive substring of the content.
	Search string
	// Since keeps reviews with reviewed_at >= Since.
	Since *time.Time
	// Sentiment keeps reviews of one models.Polarity. Unknown values are ignored.
	Sentiment string
	// WithGuestName joins guests and sets GuestName ("Unknown" when missing).
	WithGuestName bool
	Skip          int64
	Limit         int64
}

func (f ReviewFilter) match() bson.M {
	m := bson.M{}
	if f.GuestID != nil {
		m["guest_id"] = *f.GuestID
	}
	if f.Platform != "" {
		m["platform"] = f.Platform
	}
	if f.Search != "" {
		m["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.Since != nil {
		m["reviewed_at"] = bson.M{"$gte": *f.Since}
	}
	return m
}

func (f ReviewFilter) page() mongo.Pipeline {
	var p mongo.Pipeline
	if f.Skip > 0 {
		p = append(p, bson.D{{Key: "$skip", Value: f.Skip}})
	}
	if f.Limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: f.Limit}})
	}
	return p
}

// polarityExpr matches the mean of the joined scores against a polarity.
func polarityExpr(polarity string) (bson.M, bool) {
	mean := bson.M{"$ifNull": bson.A{bson.M{"$avg": "$sentiment_scores.score"}, 0}}
	switch polarity {
	case models.PolarityPositive:
		return bson.M{"$gte": bson.A{mean, models.PositiveThreshold}}, true
	case models.PolarityNegative:
		return bson.M{"$lte": bson.A{mean, models.NegativeThreshold}}, true
	case models.PolarityNeutral:
		return bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{mean, models.NegativeThreshold}},
			bson.M{"$lt": bson.A{mean, models.PositiveThreshold}},
		}}, true
	}
	return nil, false
}

var scoresLookup = bson.D{{Key: "$lookup", Value: bson.D{
	{Key: "from", Value: "sentiment_scores"},
	{Key: "localField", Value: "_id"},
	{Key: "foreignField", Value: "review_id"},
	{Key: "as", Value: "sentiment_scores"},
}}}

// pipeline matches, orders newest first and joins sentiment_scores. Paging
// runs before the join unless the sentiment filter needs the scores.
func (f ReviewFilter) pipeline() mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: f.match()}},
		{{Key: "$sort", Value: bson.D{{Key: "reviewed_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if expr, ok := polarityExpr(f.Sentiment); ok {
		p = append(p, scoresLookup, bson.D{{Key: "$match", Value: bson.M{"$expr": expr}}})
		p = append(p, f.page()...)
	} else {
		p = append(p, f.page()...)
		p = append(p, scoresLookup)
	}
	if f.WithGuestName {
		p = append(p,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "guests"},
				{Key: "localField", Value: "guest_id"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "guest"},
			}}},
			bson.D{{Key: "$addFields", Value: bson.M{
				"guest_name": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$guest.name", 0}}, "Unknown"}},
			}}},
			bson.D{{Key: "$project", Value: bson.M{"guest": 0}}},
		)
	}
	return p
}

// ListWithScores returns matching reviews with their sentiment scores, newest first.
func (r *ReviewRepository) ListWithScores(ctx context.Context, f ReviewFilter) ([]models.ReviewWithScores, error) {
	cur, err := r.col.Aggregate(ctx, f.pipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewWithScores
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func unscoredPipeline(limit int64) mongo.Pipeline {
	p := mongo.Pipeline{
		scoresLookup,
		{{Key: "$match", Value: bson.M{"sentiment_scores": bson.M{"$size": 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "ingested_at", Value: 1}}}},
		{{Key: "$project", Value: bson.M{"sentiment_scores": 0}}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return p
}

// ListUnscored returns reviews that have no sentiment scores yet, oldest
// ingestion first.
func (r *ReviewRepository) ListUnscored(ctx context.Context, limit int64) ([]models.Review, error) {
	cur, err := r.col.Aggregate(ctx, unscoredPipeline(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
