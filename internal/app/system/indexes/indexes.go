// internal/app/system/indexes/indexes.go

// Package indexes declares the MongoDB indexes the application relies on and
// ensures they exist at startup. Index creation is idempotent; Mongo treats
// an identical existing index as a no-op.
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
)

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func all() []indexSet {
	return []indexSet{
		{
			collection: "users",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "username_ci", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_username_ci"),
				},
				{
					Keys: bson.D{{Key: "login_id_ci", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_login_id_ci").
						SetPartialFilterExpression(bson.D{{Key: "login_id_ci", Value: bson.D{{Key: "$gt", Value: ""}}}}),
				},
			},
		},
		{
			collection: "member_applications",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "username", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("by_username_status")},
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_status_created")},
			},
		},
		{
			collection: "event_applications",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("by_user_status")},
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_status_created")},
			},
		},
		{
			collection: "participants",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "username", Value: 1}, {Key: "event_name", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_username_event"),
				},
			},
		},
		{
			collection: "points",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_user")},
			},
		},
		{
			collection: "vouchers",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "business_id", Value: 1}}, Options: options.Index().SetName("by_business")},
				{Keys: bson.D{{Key: "expiry_date", Value: 1}}, Options: options.Index().SetName("by_expiry")},
			},
		},
		{
			collection: "voucher_redemptions",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_user_created")},
				{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("by_status")},
			},
		},
		{
			collection: "businesses",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_owner")},
				{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: options.Index().SetName("by_name_ci")},
			},
		},
		{
			collection: "inbox_messages",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "to", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("by_recipient_date")},
			},
		},
		{
			collection: "media_items",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_created")},
			},
		},
	}
}

// EnsureAll creates every declared index. Called once from EnsureSchema.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, set := range all() {
		opCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		_, err := db.Collection(set.collection).Indexes().CreateMany(opCtx, set.models)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", set.collection, err)
		}
		logger.Debug("indexes ensured", zap.String("collection", set.collection), zap.Int("count", len(set.models)))
	}
	return nil
}
