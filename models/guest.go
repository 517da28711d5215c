package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guest tiers, promoted by order history.
const (
	TierNew     = "new"
	TierRegular = "regular"
	TierVIP     = "vip"
)

// Guest is a restaurant customer identified by email or name
// Collection: guests
type Guest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
	Name       string             `bson:"name" json:"name"`
	Email      *string            `bson:"email,omitempty" json:"email"`
	Phone      *string            `bson:"phone,omitempty" json:"phone"`
	Tier       string             `bson:"tier" json:"tier"`
	FirstVisit *time.Time         `bson:"first_visit,omitempty" json:"first_visit"`
	LastVisit  *time.Time         `bson:"last_visit,omitempty" json:"last_visit"`
}

// TouchVisit widens the first/last visit range to include at.
func (g *Guest) TouchVisit(at time.Time) {
	if g.FirstVisit == nil || at.Before(*g.FirstVisit) {
		t := at
		g.FirstVisit = &t
	}
	if g.LastVisit == nil || at.After(*g.LastVisit) {
		t := at
		g.LastVisit = &t
	}
}
