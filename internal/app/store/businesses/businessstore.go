package businessstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("businesses")}
}

var (
	// ErrOwnerHasBusiness is returned when the owner already has a listing.
	ErrOwnerHasBusiness = errors.New("this user already has a business listing")
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("business not found")
)

// Create inserts a listing. The unique owner_id index enforces one listing
// per owner.
func (s *Store) Create(ctx context.Context, b models.Business) (models.Business, error) {
	b.ID = primitive.NewObjectID()
	b.Name = normalize.Name(b.Name)
	b.NameCI = text.Fold(b.Name)
	b.Phone = normalize.Phone(b.Phone)
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Business{}, ErrOwnerHasBusiness
		}
		return models.Business{}, err
	}
	return b, nil
}

// GetByID loads a listing by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	var b models.Business
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByOwner loads the listing owned by a user.
func (s *Store) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Business, error) {
	var b models.Business
	if err := s.c.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns the directory sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Business, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Business{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BusinessUpdate holds the fields an owner may edit.
type BusinessUpdate struct {
	Name        string
	Description string
	Category    string
	Address     string
	Phone       string
	Website     string
}

// Update rewrites a listing's editable fields, scoped to its owner.
func (s *Store) Update(ctx context.Context, id, ownerID primitive.ObjectID, upd BusinessUpdate) error {
	name := normalize.Name(upd.Name)
	set := bson.M{
		"name":        name,
		"name_ci":     text.Fold(name),
		"description": upd.Description,
		"category":    upd.Category,
		"address":     upd.Address,
		"phone":       normalize.Phone(upd.Phone),
		"website":     upd.Website,
		"updated_at":  time.Now(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a listing, scoped to its owner.
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSlideshowImage appends an image to the listing's gallery.
func (s *Store) AddSlideshowImage(ctx context.Context, id, ownerID primitive.ObjectID, img models.SlideshowImage) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, bson.M{
		"$push": bson.M{"slideshow": img},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveSlideshowImage drops an image from the gallery by its storage path.
func (s *Store) RemoveSlideshowImage(ctx context.Context, id, ownerID primitive.ObjectID, path string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, bson.M{
		"$pull": bson.M{"slideshow": bson.M{"path": path}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
