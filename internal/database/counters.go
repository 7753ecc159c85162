package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counter struct {
	Name  string `bson:"_id"`
	Value int    `bson:"value"`
}

// sequence hands out monotonically increasing integer ids stored in the
// counters collection, one document per name.
type sequence struct {
	coll *mongo.Collection
	name string
}

func newSequence(db *mongo.Database, name string) sequence {
	return sequence{coll: db.Collection(CountersCollection), name: name}
}

func (s sequence) next(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", s.name, err)
	}
	return c.Value, nil
}
