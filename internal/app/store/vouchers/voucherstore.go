package voucherstore

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
	return &Store{c: db.Collection("vouchers")}
}

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("voucher not found")
	// ErrOutOfStock is returned when the conditional stock decrement matches nothing.
	ErrOutOfStock = errors.New("voucher out of stock")
)

// Create inserts a voucher for a business.
func (s *Store) Create(ctx context.Context, v models.Voucher) (models.Voucher, error) {
	v.ID = primitive.NewObjectID()
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Voucher{}, err
	}
	return v, nil
}

// GetByID loads a voucher by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error) {
	var v models.Voucher
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all vouchers, newest first.
func (s *Store) List(ctx context.Context) ([]models.Voucher, error) {
	return s.find(ctx, bson.M{})
}

// ListByBusiness returns one business's vouchers, newest first.
func (s *Store) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]models.Voucher, error) {
	return s.find(ctx, bson.M{"business_id": businessID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Voucher, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Voucher{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VoucherUpdate holds the fields a business owner may edit.
type VoucherUpdate struct {
	Title          string
	Description    string
	PointsRequired int
	ExpiryDate     time.Time
	Stock          int
}

// Update rewrites a voucher's editable fields, scoped to the owning business.
func (s *Store) Update(ctx context.Context, id, businessID primitive.ObjectID, upd VoucherUpdate) error {
	set := bson.M{
		"title":           upd.Title,
		"description":     upd.Description,
		"points_required": upd.PointsRequired,
		"expiry_date":     upd.ExpiryDate,
		"stock":           upd.Stock,
		"updated_at":      time.Now(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "business_id": businessID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a voucher, scoped to the owning business.
func (s *Store) Delete(ctx context.Context, id, businessID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "business_id": businessID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock takes one unit off the shelf. The stock>0 filter makes the
// take-one race-safe; the last unit goes to exactly one caller.
func (s *Store) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"stock": -1}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOutOfStock
	}
	return nil
}

// IncrementStock returns a unit, used to unwind a failed redemption.
func (s *Store) IncrementStock(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": 1}, "$set": bson.M{"updated_at": time.Now()}})
	return err
}
