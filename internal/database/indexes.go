package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(ProductsCollection).Indexes()

	skuIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().
			SetName("sku_unique").
			SetUnique(true),
	}

	zap.L().Debug("EnsureProductIndexes: creating sku_unique index")
	if _, err := indexes.CreateOne(ctx, skuIndex); err != nil {
		zap.L().Error("EnsureProductIndexes: sku index error", zap.Error(err))
		return err
	}
	zap.L().Debug("EnsureProductIndexes: sku_unique index created")
	return nil
}

// EnsureCartIndexes creates the unique cart line index that backs
// merge-on-add, plus a session lookup index.
func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(CartCollection).Indexes()

	cartIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sessionId", Value: 1},
				{Key: "productId", Value: 1},
				{Key: "selectedColor", Value: 1},
				{Key: "selectedSize", Value: 1},
			},
			Options: options.Index().SetName("cart_line_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("sessionId_index"),
		},
	}

	zap.L().Debug("EnsureCartIndexes: creating cart indexes")
	if _, err := indexes.CreateMany(ctx, cartIndexes); err != nil {
		zap.L().Error("EnsureCartIndexes: index error", zap.Error(err))
		return err
	}
	zap.L().Debug("EnsureCartIndexes: cart indexes created")
	return nil
}
