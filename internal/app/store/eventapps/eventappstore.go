package eventappstore

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
	return &Store{c: db.Collection("event_applications")}
}

var (
	// ErrPendingApplicationExists is returned when the user already has a
	// pending event application. The guard is per user, not per event, so a
	// user cannot queue registrations for two events at once.
	ErrPendingApplicationExists = errors.New("a pending event application already exists for this user")
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("event application not found")
)

// Create inserts a pending event application.
func (s *Store) Create(ctx context.Context, app models.EventApplication) (models.EventApplication, error) {
	app.Username = normalize.Username(app.Username)
	app.EventName = normalize.Name(app.EventName)
	app.TeamName = normalize.Name(app.TeamName)
	if app.PaymentStatus == "" {
		app.PaymentStatus = models.PaymentUnpaid
	}
	app.Status = models.ApplicationPending
	app.CreatedAt = time.Now()

	err := s.c.FindOne(ctx, bson.M{
		"user_id": app.UserID,
		"status":  models.ApplicationPending,
	}).Err()
	if err == nil {
		return models.EventApplication{}, ErrPendingApplicationExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.EventApplication{}, err
	}

	app.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.EventApplication{}, err
	}
	return app, nil
}

// ListPending returns pending applications, newest first.
func (s *Store) ListPending(ctx context.Context) ([]models.EventApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"status": models.ApplicationPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []models.EventApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetByID loads an application by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventApplication, error) {
	var app models.EventApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// SetStatus updates the application status and returns the updated document.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.EventApplication, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var app models.EventApplication
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}}, opts).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// SetPaymentStatus flips the payment flag on a pending application.
func (s *Store) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, paymentStatus string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment_status": paymentStatus}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
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
