package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	ProductsCollection = "products"
	CartCollection     = "cart_items"
	CountersCollection = "counters"
)

// Connect opens a client against uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Open connects, ensures indexes and returns the product and cart stores
// backed by dbName.
func Open(ctx context.Context, uri, dbName string) (*mongo.Client, *Products, *Cart, error) {
	client, err := Connect(ctx, uri)
	if err != nil {
		return nil, nil, nil, err
	}
	db := client.Database(dbName)
	zap.L().Info("MongoDB connected", zap.String("db", db.Name()))

	if err := EnsureProductIndexes(db); err != nil {
		zap.L().Warn("product index warning", zap.Error(err))
	}
	if err := EnsureCartIndexes(db); err != nil {
		zap.L().Warn("cart index warning", zap.Error(err))
	}

	return client, NewProducts(db, nil), NewCart(db, nil), nil
}
