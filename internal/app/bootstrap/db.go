// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/communityhub/internal/app/system/indexes"
	"github.com/dalemusser/communityhub/internal/app/system/storage"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection, the Redis client for chat,
// and the blob storage backend.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	connCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("mongodb connected", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	if appCfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		if err := rdb.Ping(connCtx).Err(); err != nil {
			// Chat is a degradable feature; the rest of the app still runs.
			logger.Warn("redis unreachable; chat disabled", zap.String("addr", appCfg.RedisAddr), zap.Error(err))
			_ = rdb.Close()
		} else {
			logger.Info("redis connected", zap.String("addr", appCfg.RedisAddr))
			deps.Redis = rdb
		}
	}

	store, err := storage.New(connCtx, storage.Config{
		Type:      appCfg.StorageType,
		LocalDir:  appCfg.StorageLocalPath,
		LocalBase: appCfg.StorageLocalURL,
		S3Bucket:  appCfg.StorageS3Bucket,
		S3Region:  appCfg.StorageS3Region,
		S3Prefix:  appCfg.StorageS3Prefix,
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("init storage: %w", err)
	}
	deps.Storage = store
	logger.Info("storage ready", zap.String("type", appCfg.StorageType))

	return deps, nil
}

// EnsureSchema creates the MongoDB indexes the application relies on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase, logger)
}
