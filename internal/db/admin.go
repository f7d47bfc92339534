package db

import (
	"context"
	"fmt"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAdminState returns the singleton admin document, or a NotFoundError if
// the service has never been seeded.
func (db *Database) GetAdminState(ctx context.Context) (*model.AdminStateDocument, error) {
	filter := bson.M{"_id": model.AdminStateID}

	var doc model.AdminStateDocument
	err := db.collection(model.AdminStateCollection).
		FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{
				Key:     model.AdminStateID,
				Message: "admin state has not been initialized",
			}
		}
		return nil, fmt.Errorf("failed to get admin state: %w", err)
	}
	return &doc, nil
}

// SaveAdminState upserts the singleton admin document.
func (db *Database) SaveAdminState(ctx context.Context, doc *model.AdminStateDocument) error {
	doc.ID = model.AdminStateID

	filter := bson.M{"_id": model.AdminStateID}
	update := bson.M{"$set": doc}
	_, err := db.collection(model.AdminStateCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save admin state: %w", err)
	}
	return nil
}
