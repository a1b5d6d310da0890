// internal/domain/models/point.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Point holds a user's loyalty balance plus an append-only history.
// Balance mutations go through the points store, which guards deductions
// with a conditional update so the balance can never go negative.
type Point struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Points  int                `bson:"points" json:"points"`
	History []PointEntry       `bson:"history" json:"history"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PointEntry is one credit or debit in a Point history. Amount is positive
// for awards and negative for redemptions.
type PointEntry struct {
	Amount int       `bson:"amount" json:"amount"`
	Reason string    `bson:"reason" json:"reason"`
	Date   time.Time `bson:"date" json:"date"`
}
