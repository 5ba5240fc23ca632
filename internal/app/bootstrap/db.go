// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminstore "github.com/caristo/adminhub/internal/app/store/admins"
	"github.com/caristo/adminhub/internal/app/store/audit"
	"github.com/caristo/adminhub/internal/domain/models"
)

// ConnectDB opens the Mongo client and verifies the connection.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes and seeds the initial superadmin.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	admins := adminstore.New(deps.MongoDatabase)
	if err := admins.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure admin indexes: %w", err)
	}
	if err := audit.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure audit indexes: %w", err)
	}

	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, admins, appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureSuperAdmin creates the initial superadmin account if no admin
// with the configured email exists. An existing account is left alone;
// password changes go through the dashboard, not the environment.
func ensureSuperAdmin(ctx context.Context, admins *adminstore.Store, email, password string, logger *zap.Logger) error {
	_, err := admins.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("look up superadmin: %w", err)
	}

	if len(password) < 12 {
		return fmt.Errorf("superadmin_password must be at least 12 characters to seed %s", email)
	}

	created, err := admins.Create(ctx, models.Admin{
		FullName: "Initial Superadmin",
		Email:    email,
		Role:     models.RoleSuperAdmin,
		Status:   models.AdminStatusActive,
	}, password)
	if err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	logger.Info("seeded initial superadmin",
		zap.String("email", email),
		zap.String("admin_id", created.ID.Hex()))
	return nil
}

// collectionCount is a small helper for startup logging.
func collectionCount(ctx context.Context, db *mongo.Database, name string) int64 {
	n, err := db.Collection(name).CountDocuments(ctx, bson.M{})
	if err != nil {
		return -1
	}
	return n
}
