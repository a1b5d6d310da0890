package participantstore

import (
	"context"
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
	return &Store{c: db.Collection("participants")}
}

// Upsert records an approved participation. Keyed on (username, event_name)
// so re-approving an application refreshes the detail fields instead of
// inserting a second row.
func (s *Store) Upsert(ctx context.Context, p models.Participant) error {
	now := time.Now()
	filter := bson.M{"username": p.Username, "event_name": p.EventName}
	update := bson.M{
		"$set": bson.M{
			"user_id":    p.UserID,
			"team_name":  p.TeamName,
			"contact":    p.Contact,
			"role":       p.Role,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"username":   p.Username,
			"event_name": p.EventName,
			"created_at": now,
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListByEvent returns participants of one event, oldest first.
func (s *Store) ListByEvent(ctx context.Context, eventName string) ([]models.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"event_name": eventName}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Participant{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns every event the user participates in.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Participant{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
