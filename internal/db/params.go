package db

import (
	"context"
	"fmt"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetRedemptionRate returns the persisted redemption rate in basis points,
// or a NotFoundError if no rate has ever been set.
func (db *Database) GetRedemptionRate(ctx context.Context) (uint64, error) {
	filter := bson.M{"_id": model.RedemptionParamsID}

	var doc model.RedemptionParamsDocument
	err := db.collection(model.TreasuryParamsCollection).
		FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, &NotFoundError{
				Key:     model.RedemptionParamsID,
				Message: "redemption rate has not been initialized",
			}
		}
		return 0, fmt.Errorf("failed to get redemption rate: %w", err)
	}
	return doc.RateBps, nil
}

// SaveRedemptionRate overwrites the redemption rate unconditionally.
func (db *Database) SaveRedemptionRate(ctx context.Context, rateBps uint64) error {
	doc := model.NewRedemptionParamsDocument(rateBps)

	filter := bson.M{"_id": model.RedemptionParamsID}
	update := bson.M{"$set": doc}
	_, err := db.collection(model.TreasuryParamsCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save redemption rate: %w", err)
	}
	return nil
}
