package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// normalizeProductDocument tolerates hand-edited documents: a category stored
// as an array, a string or missing inStock, and non-int stock counts.
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if cats, ok := raw["category"].(bson.A); ok {
		raw["category"] = ""
		if len(cats) > 0 {
			if first, ok := cats[0].(string); ok {
				raw["category"] = first
			}
		}
	}

	if val, ok := raw["inStock"]; ok {
		switch typed := val.(type) {
		case string:
			raw["inStock"] = typed != "false"
		case bool:
		default:
			raw["inStock"] = true
		}
	} else {
		raw["inStock"] = true
	}

	if val, ok := raw["stockCount"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["stockCount"] = int(typed)
		case int64:
			raw["stockCount"] = int(typed)
		case float64:
			raw["stockCount"] = int(typed)
		case int:
		default:
			raw["stockCount"] = 0
		}
	} else {
		raw["stockCount"] = 0
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
