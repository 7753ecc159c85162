package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
	"storefront/internal/store"
)

// Cart is the MongoDB implementation of store.CartStore. Line uniqueness is
// enforced by the cart_line_unique index.
type Cart struct {
	coll  *mongo.Collection
	ids   sequence
	clock clock.Clock
}

var _ store.CartStore = (*Cart)(nil)

func NewCart(db *mongo.Database, c clock.Clock) *Cart {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Cart{
		coll:  db.Collection(CartCollection),
		ids:   newSequence(db, CartCollection),
		clock: c,
	}
}

func (s *Cart) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return items, nil
}

func (s *Cart) Get(ctx context.Context, id int) (models.CartItem, error) {
	var item models.CartItem
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CartItem{}, store.ErrNotFound
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("find cart item %d: %w", id, err)
	}
	return item, nil
}

// Upsert increments the quantity of the matching line or inserts a new one in
// a single FindOneAndUpdate. Two concurrent inserts of the same line collide
// on the unique index; the loser retries once and then matches the winner.
func (s *Cart) Upsert(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	id, err := s.ids.next(ctx)
	if err != nil {
		return models.CartItem{}, err
	}

	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"_id":       id,
			"createdAt": s.clock.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var merged models.CartItem
	for attempt := 0; attempt < 2; attempt++ {
		err = s.coll.FindOneAndUpdate(ctx, lineFilter(item), update, opts).Decode(&merged)
		if err == nil {
			return merged, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
		zap.L().Debug("cart line upsert raced, retrying", zap.Int("productId", item.ProductID))
	}
	return models.CartItem{}, fmt.Errorf("upsert cart item: %w", err)
}

func (s *Cart) Update(ctx context.Context, id int, patch models.CartItemPatch) (models.CartItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return models.CartItem{}, err
	}

	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.SelectedColor != nil {
		item.SelectedColor = models.OptionalString(patch.SelectedColor)
	}
	if patch.SelectedSize != nil {
		item.SelectedSize = models.OptionalString(patch.SelectedSize)
	}

	clashFilter := lineFilter(item)
	clashFilter["_id"] = bson.M{"$ne": id}

	var other models.CartItem
	err = s.coll.FindOne(ctx, clashFilter).Decode(&other)
	switch {
	case err == nil:
		return s.mergeInto(ctx, other.ID, item)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.CartItem{}, fmt.Errorf("find cart line: %w", err)
	}

	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"quantity":      item.Quantity,
		"selectedColor": item.SelectedColor,
		"selectedSize":  item.SelectedSize,
	}})
	if err != nil {
		return models.CartItem{}, fmt.Errorf("update cart item %d: %w", id, err)
	}
	return item, nil
}

// mergeInto folds item into the existing line targetID and deletes item.
func (s *Cart) mergeInto(ctx context.Context, targetID int, item models.CartItem) (models.CartItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var merged models.CartItem
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": targetID},
		bson.M{"$inc": bson.M{"quantity": item.Quantity}},
		opts,
	).Decode(&merged)
	if err != nil {
		return models.CartItem{}, fmt.Errorf("merge cart item %d: %w", item.ID, err)
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": item.ID}); err != nil {
		return models.CartItem{}, fmt.Errorf("delete merged cart item %d: %w", item.ID, err)
	}
	return merged, nil
}

func (s *Cart) Remove(ctx context.Context, id int) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete cart item %d: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *Cart) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return fmt.Errorf("clear cart %s: %w", sessionID, err)
	}
	return nil
}

func (s *Cart) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// lineFilter matches the (session, product, color, size) slot of item. A nil
// option matches a stored null.
func lineFilter(item models.CartItem) bson.M {
	return bson.M{
		"sessionId":     item.SessionID,
		"productId":     item.ProductID,
		"selectedColor": item.SelectedColor,
		"selectedSize":  item.SelectedSize,
	}
}
