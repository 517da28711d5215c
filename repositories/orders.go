package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"savoriq/models"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *OrderRepository) CountByGuest(ctx context.Context, guestID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"guest_id": guestID})
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// ListByGuest returns the guest's orders, newest first. A limit of 0 returns all.
func (r *OrderRepository) ListByGuest(ctx context.Context, guestID primitive.ObjectID, skip, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ordered_at", Value: -1}, {Key: "_id", Value: -1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// itemAggregatePipeline groups orders by (item_name, category). Sorted by
// name then category so repeated calls see the same catalog order.
func itemAggregatePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "item_name", Value: "$item_name"},
				{Key: "category", Value: "$category"},
			}},
			{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "item_name", Value: "$_id.item_name"},
			{Key: "category", Value: "$_id.category"},
			{Key: "order_count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "item_name", Value: 1}, {Key: "category", Value: 1}}}},
	}
}

// ItemAggregates returns the order catalog: one entry per (item_name, category).
func (r *OrderRepository) ItemAggregates(ctx context.Context) ([]models.ItemAggregate, error) {
	cur, err := r.col.Aggregate(ctx, itemAggregatePipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ItemAggregate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
