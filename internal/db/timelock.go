package db

import (
	"context"
	"fmt"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetActionQueued upserts the queued flag for the given action fingerprint.
// The flag is the only thing persisted about an action, so a set-false on a
// never-queued fingerprint simply writes a false entry.
func (db *Database) SetActionQueued(ctx context.Context, txHashHex string, queued bool) error {
	doc := model.NewQueuedActionDocument(txHashHex, queued)

	filter := bson.M{"_id": txHashHex}
	update := bson.M{"$set": doc}
	_, err := db.collection(model.TimelockQueueCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set queued flag for %s: %w", txHashHex, err)
	}
	return nil
}

// GetActionQueued reads the queued flag for the given fingerprint. An absent
// document reads as false: the registry does not distinguish "never queued"
// from "already executed".
func (db *Database) GetActionQueued(ctx context.Context, txHashHex string) (bool, error) {
	filter := bson.M{"_id": txHashHex}

	var doc model.QueuedActionDocument
	err := db.collection(model.TimelockQueueCollection).
		FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, fmt.Errorf("failed to get queued flag for %s: %w", txHashHex, err)
	}
	return doc.Queued, nil
}
