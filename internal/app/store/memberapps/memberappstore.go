package memberappstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/communityhub/internal/app/system/normalize"
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
	return &Store{c: db.Collection("member_applications")}
}

var (
	// ErrPendingExists is returned when the username already has a pending application.
	ErrPendingExists = errors.New("a pending application already exists for this username")
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("member application not found")
)

// Create inserts a pending application. One pending application per username.
func (s *Store) Create(ctx context.Context, app models.MemberApplication) (models.MemberApplication, error) {
	app.Username = normalize.Username(app.Username)
	app.FullName = normalize.Name(app.FullName)
	app.Email = normalize.Email(app.Email)
	app.Phone = normalize.Phone(app.Phone)
	app.Status = models.ApplicationPending
	app.CreatedAt = time.Now()

	err := s.c.FindOne(ctx, bson.M{
		"username": app.Username,
		"status":   models.ApplicationPending,
	}).Err()
	if err == nil {
		return models.MemberApplication{}, ErrPendingExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.MemberApplication{}, err
	}

	app.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.MemberApplication{}, err
	}
	return app, nil
}

// ListPending returns pending applications, newest first.
func (s *Store) ListPending(ctx context.Context) ([]models.MemberApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"status": models.ApplicationPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []models.MemberApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetByID loads an application by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MemberApplication, error) {
	var app models.MemberApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetPendingByUsername loads the pending application for a username.
func (s *Store) GetPendingByUsername(ctx context.Context, username string) (*models.MemberApplication, error) {
	var app models.MemberApplication
	err := s.c.FindOne(ctx, bson.M{
		"username": normalize.Username(username),
		"status":   models.ApplicationPending,
	}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Delete removes an application once it has been acted on.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
