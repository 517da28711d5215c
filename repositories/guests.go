package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"savoriq/models"
)

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection("guests")}
}

func (r *GuestRepository) findOne(ctx context.Context, filter bson.M) (*models.Guest, error) {
	var g models.Guest
	if err := r.col.FindOne(ctx, filter).Decode(&g); err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Guest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *GuestRepository) FindByEmail(ctx context.Context, email string) (*models.Guest, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByName matches the exact guest name.
func (r *GuestRepository) FindByName(ctx context.Context, name string) (*models.Guest, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// GuestFilter narrows List. Zero values mean no filter.
type GuestFilter struct {
	Tier  string
	Skip  int64
	Limit int64
}

func (f GuestFilter) query() (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if f.Tier != "" {
		filter["tier"] = f.Tier
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_visit", Value: -1}, {Key: "_id", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return filter, opts
}

// List returns guests, most recent visit first.
func (r *GuestRepository) List(ctx context.Context, f GuestFilter) ([]models.Guest, error) {
	filter, opts := f.query()
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Guest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a new guest and sets its ID. A taken email yields ErrDuplicate.
func (r *GuestRepository) Insert(ctx context.Context, g *models.Guest) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	if g.Tier == "" {
		g.Tier = models.TierNew
	}
	res, err := r.col.InsertOne(ctx, g)
	if err != nil {
		return duplicate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = id
	}
	return nil
}

// UpdateProfile persists tier and visit range.
func (r *GuestRepository) UpdateProfile(ctx context.Context, g *models.Guest) error {
	g.UpdatedAt = time.Now()
	set := bson.M{
		"tier":       g.Tier,
		"updated_at": g.UpdatedAt,
	}
	if g.FirstVisit != nil {
		set["first_visit"] = *g.FirstVisit
	}
	if g.LastVisit != nil {
		set["last_visit"] = *g.LastVisit
	}
	_, err := r.col.UpdateByID(ctx, g.ID, bson.M{"$set": set})
	return err
}

func (r *GuestRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
