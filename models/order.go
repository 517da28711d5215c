package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryFood  = "food"
	CategoryDrink = "drink"
)

// Order is one purchased line item
// Collection: orders
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuestID   primitive.ObjectID `bson:"guest_id" json:"guest_id"`
	ItemName  string             `bson:"item_name" json:"item_name"`
	Category  string             `bson:"category" json:"category"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	OrderedAt time.Time          `bson:"ordered_at" json:"ordered_at"`
}

// ItemAggregate is the order count of one (item_name, category) pair.
// Not stored; produced by an aggregation over orders.
type ItemAggregate struct {
	ItemName   string `bson:"item_name" json:"item_name"`
	Category   string `bson:"category" json:"category"`
	OrderCount int    `bson:"order_count" json:"order_count"`
}
