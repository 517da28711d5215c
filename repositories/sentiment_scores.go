package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"savoriq/models"
)

type SentimentScoreRepository struct {
	col *mongo.Collection
}

func NewSentimentScoreRepository(db *mongo.Database) *SentimentScoreRepository {
	return &SentimentScoreRepository{col: db.Collection("sentiment_scores")}
}

// replaceModels upserts one document per (review_id, bucket) and removes the
// review's scores for buckets that are not in scores.
func replaceModels(reviewID primitive.ObjectID, scores []models.SentimentScore) []mongo.WriteModel {
	buckets := make([]string, 0, len(scores))
	out := make([]mongo.WriteModel, 0, len(scores)+1)
	for i := range scores {
		scores[i].ReviewID = reviewID
		doc := scores[i]
		doc.ID = primitive.NilObjectID
		buckets = append(buckets, doc.Bucket)
		out = append(out, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"review_id": reviewID, "bucket": doc.Bucket}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	out = append(out, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"review_id": reviewID, "bucket": bson.M{"$nin": buckets}}))
	return out
}

// ReplaceForReview makes scores the review's only stored scores. Together with
// the unique (review_id, bucket) index, concurrent or redelivered analyses
// never leave two scores in one bucket.
func (r *SentimentScoreRepository) ReplaceForReview(ctx context.Context, reviewID primitive.ObjectID, scores []models.SentimentScore) error {
	_, err := r.col.BulkWrite(ctx, replaceModels(reviewID, scores), options.BulkWrite().SetOrdered(true))
	return err
}

func (r *SentimentScoreRepository) DeleteByReview(ctx context.Context, reviewID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"review_id": reviewID})
	return err
}

func bucketAveragesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		// scores written after their review was deleted are skipped
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "reviews"},
			{Key: "localField", Value: "review_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "review"},
		}}},
		{{Key: "$match", Value: bson.M{"review": bson.M{"$ne": bson.A{}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$bucket"},
			{Key: "avg_score", Value: bson.D{{Key: "$avg", Value: "$score"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// BucketAverages returns the mean score and count per bucket.
func (r *SentimentScoreRepository) BucketAverages(ctx context.Context) ([]models.BucketStat, error) {
	cur, err := r.col.Aggregate(ctx, bucketAveragesPipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BucketStat
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
