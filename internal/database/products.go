package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
	"storefront/internal/store"
)

// Products is the MongoDB implementation of store.ProductStore.
type Products struct {
	coll  *mongo.Collection
	ids   sequence
	clock clock.Clock
}

var _ store.ProductStore = (*Products)(nil)

func NewProducts(db *mongo.Database, c clock.Clock) *Products {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Products{
		coll:  db.Collection(ProductsCollection),
		ids:   newSequence(db, ProductsCollection),
		clock: c,
	}
}

func (p *Products) All(ctx context.Context) ([]models.Product, error) {
	return p.find(ctx, bson.M{})
}

func (p *Products) GetByID(ctx context.Context, id int) (models.Product, error) {
	var raw bson.M
	err := p.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, store.ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %d: %w", id, err)
	}
	return normalizeProductDocument(raw)
}

func (p *Products) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return p.find(ctx, bson.M{"category": exactFold(category)})
}

func (p *Products) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := containsFold(query)
	return p.find(ctx, bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
		bson.M{"category": pattern},
		bson.M{"tags": pattern},
	}})
}

func (p *Products) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.SKU = strings.TrimSpace(product.SKU)

	id, err := p.ids.next(ctx)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = id
	product.CreatedAt = p.clock.Now()

	if _, err := p.coll.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, store.ErrDuplicateSKU
		}
		return models.Product{}, fmt.Errorf("insert product %s: %w", product.SKU, err)
	}
	return product, nil
}

func (p *Products) Count(ctx context.Context) (int, error) {
	n, err := p.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(n), nil
}

func (p *Products) Ping(ctx context.Context) error {
	return p.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (p *Products) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := p.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func containsFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
