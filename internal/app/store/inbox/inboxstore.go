package inboxstore

import (
	"context"
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
	return &Store{c: db.Collection("inbox_messages")}
}

// Send delivers a message to a user's inbox. Implements notify.InboxWriter.
func (s *Store) Send(ctx context.Context, msg models.InboxMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.To = normalize.Username(msg.To)
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}
	_, err := s.c.InsertOne(ctx, msg)
	return err
}

// Count returns how many unread messages the user has.
func (s *Store) Count(ctx context.Context, username string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"to": normalize.Username(username)})
}

// Consume returns the user's messages, newest first, and deletes them.
// Reading the inbox is the read receipt; there is no separate read flag.
func (s *Store) Consume(ctx context.Context, username string) ([]models.InboxMessage, error) {
	filter := bson.M{"to": normalize.Username(username)}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []models.InboxMessage{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return msgs, nil
	}

	ids := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return msgs, nil
}
