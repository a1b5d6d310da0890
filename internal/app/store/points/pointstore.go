package pointstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("points")}
}

// ErrInsufficientPoints is returned when a deduction would take the balance
// below zero.
var ErrInsufficientPoints = errors.New("not enough points")

// GetByUser loads a user's balance. A user with no document yet gets a zero
// balance, not an error.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Point, error) {
	var p models.Point
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Point{UserID: userID, Points: 0, History: []models.PointEntry{}}, nil
		}
		return nil, err
	}
	return &p, nil
}

// Award credits points, creating the balance document on first award.
func (s *Store) Award(ctx context.Context, userID primitive.ObjectID, amount int, reason string) error {
	now := time.Now()
	entry := models.PointEntry{Amount: amount, Reason: reason, Date: now}
	update := bson.M{
		"$inc":  bson.M{"points": amount},
		"$push": bson.M{"history": entry},
		"$set":  bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    userID,
			"created_at": now,
		},
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

// Deduct debits points. The filter requires points >= amount so a concurrent
// redemption cannot drive the balance negative.
func (s *Store) Deduct(ctx context.Context, userID primitive.ObjectID, amount int, reason string) error {
	now := time.Now()
	entry := models.PointEntry{Amount: -amount, Reason: reason, Date: now}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "points": bson.M{"$gte": amount}},
		bson.M{
			"$inc":  bson.M{"points": -amount},
			"$push": bson.M{"history": entry},
			"$set":  bson.M{"updated_at": now},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInsufficientPoints
	}
	return nil
}
