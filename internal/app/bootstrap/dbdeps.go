// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/communityhub/internal/app/system/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis backs forum chat; nil when redis_addr is blank.
	Redis *redis.Client

	// Storage holds gallery and slideshow uploads.
	Storage storage.Store
}
