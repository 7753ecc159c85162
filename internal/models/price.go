package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Price is a currency amount kept as an exact decimal. It serializes as a
// JSON string ("1499") and is stored in MongoDB as a string as well.
type Price struct {
	decimal.Decimal
}

func NewPrice(value string) (Price, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return Price{d}, nil
}

// MustPrice is NewPrice for literals known to be valid.
func MustPrice(value string) Price {
	p, err := NewPrice(value)
	if err != nil {
		panic(err)
	}
	return p
}

func PriceFromInt(value int64) Price {
	return Price{decimal.NewFromInt(value)}
}

func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}

// UnmarshalBSONValue accepts strings as well as numeric BSON types, so prices
// entered as numbers in the database still load.
func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		parsed, err := NewPrice(value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case bsontype.Double:
		var value float64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*p = Price{decimal.NewFromFloat(value)}
		return nil
	case bsontype.Int32:
		var value int32
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*p = Price{decimal.NewFromInt32(value)}
		return nil
	case bsontype.Int64:
		var value int64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*p = Price{decimal.NewFromInt(value)}
		return nil
	case bsontype.Decimal128:
		var value primitive.Decimal128
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		return p.UnmarshalText([]byte(value.String()))
	default:
		return fmt.Errorf("cannot decode %s into Price", t)
	}
}
