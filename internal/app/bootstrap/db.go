// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/indexes"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the MongoDB client and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().ApplyURI(appCfg.MongoURI)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates collections, JSON-schema validators and indexes.
// Validators go first so that collections exist before index builds.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	schemaCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := validators.EnsureAll(schemaCtx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return fmt.Errorf("validators: %w", err)
	}
	if err := indexes.EnsureAll(schemaCtx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return fmt.Errorf("indexes: %w", err)
	}
	if err := audit.New(deps.MongoDatabase).EnsureIndexes(schemaCtx); err != nil {
		logger.Error("ensure audit indexes failed", zap.Error(err))
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}
