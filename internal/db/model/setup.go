package model

import (
	"context"
	"fmt"
	"time"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setupTimeout = 30 * time.Second

var collections = []string{
	TimelockQueueCollection,
	AdminStateCollection,
	TreasuryParamsCollection,
}

// Setup creates the collections used by the service. Index creation is not
// needed: every collection is keyed by its _id.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for _, name := range collections {
		if existingSet[name] {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	return nil
}
