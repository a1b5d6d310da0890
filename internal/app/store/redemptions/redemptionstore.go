package redemptionstore

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
	return &Store{c: db.Collection("voucher_redemptions")}
}

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("redemption not found")

// Create records a successful redemption as active.
func (s *Store) Create(ctx context.Context, r models.VoucherRedemption) (models.VoucherRedemption, error) {
	r.ID = primitive.NewObjectID()
	r.Status = models.RedemptionActive
	now := time.Now()
	r.RedeemedAt = now
	r.CreatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.VoucherRedemption{}, err
	}
	return r, nil
}

// HasRecent reports whether the user redeemed anything within the window.
func (s *Store) HasRecent(ctx context.Context, userID primitive.ObjectID, window time.Duration) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": time.Now().Add(-window)},
	}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// ListByUser returns the user's redemptions, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.VoucherRedemption, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.VoucherRedemption{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a redemption to a new lifecycle state. The update is
// idempotent; repairing an already-repaired row matches zero documents and
// that is fine.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "status": bson.M{"$ne": status}},
		bson.M{"$set": bson.M{"status": status}})
	return err
}

// ExpireDue flips active redemptions whose snapshotted expiry has passed.
// Returns the number repaired. Implements tasks.RedemptionSweeper.
func (s *Store) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"status": models.RedemptionActive, "expires_at": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.RedemptionExpired}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
